package scene

// Capability interfaces, one getter/setter pair per synchronized field.

type NameGetter interface{ Name() string }
type NameSetter interface{ SetName(string) }

type OpacityGetter interface{ Opacity() float64 }
type OpacitySetter interface{ SetOpacity(float64) }

type VisibilityGetter interface{ Visibility() bool }
type VisibilitySetter interface{ SetVisibility(bool) }

type ColorByGetter interface{ ColorBy() string }
type ColorBySetter interface{ SetColorBy(string) }

type PointSizeGetter interface{ PointSize() int }
type PointSizeSetter interface{ SetPointSize(int) }

type ModeGetter interface{ Mode() string }
type ModeSetter interface{ SetMode(string) }

type SliceIndexGetter interface{ SliceIndex() int }
type SliceIndexSetter interface{ SetSliceIndex(int) }

type BackgroundGetter interface{ Background() string }
type BackgroundSetter interface{ SetBackground(string) }

type OrientationAxesGetter interface{ OrientationAxes() bool }
type OrientationAxesSetter interface{ SetOrientationAxes(bool) }

type ParallelProjectionGetter interface{ ParallelProjection() bool }
type ParallelProjectionSetter interface{ SetParallelProjection(bool) }

var (
	_ NameGetter = (*Source)(nil)
	_ NameSetter = (*Source)(nil)

	_ OpacitySetter    = (*Geometry)(nil)
	_ VisibilitySetter = (*Geometry)(nil)
	_ ColorBySetter    = (*Geometry)(nil)
	_ PointSizeSetter  = (*Geometry)(nil)
	_ ModeSetter       = (*Geometry)(nil)

	_ OpacitySetter    = (*Slice)(nil)
	_ SliceIndexSetter = (*Slice)(nil)

	_ BackgroundSetter         = (*View)(nil)
	_ OrientationAxesSetter    = (*View)(nil)
	_ ParallelProjectionSetter = (*View)(nil)
)
