package testutil

// WithStandardScene adds a 3D view, the Z slice view and two sources.
//
//	View3D, View2D_Z
//	cube   (20x10x5, arrays: density, temperature)
//	sphere (8x8x8, hidden)
func (b *Builder) WithStandardScene() *Builder {
	return b.
		WithView("View3D").
		WithView("View2D_Z").
		WithSource("cube", Dimensions(20, 10, 5), Arrays("density", "temperature")).
		WithSource("sphere", Dimensions(8, 8, 8), Hidden())
}
