package workspace

import (
	"github.com/zjrosen/vizsync/internal/fieldsync"
	"github.com/zjrosen/vizsync/internal/scene"
)

// Panel is a group of synchronized fields shown for the selected dataset.
type Panel struct {
	Name       string
	Priority   int
	Definition fieldsync.Definition
}

// Field declarations, one per capability pair in package scene.
var (
	NameField = fieldsync.Field[string]{
		Name:    "name",
		Initial: "",
		Get:     fieldsync.Getter(scene.NameGetter.Name),
		Set:     fieldsync.Setter(scene.NameSetter.SetName),
	}
	ColorByField = fieldsync.Field[string]{
		Name:    "colorBy",
		Initial: "",
		Get:     fieldsync.Getter(scene.ColorByGetter.ColorBy),
		Set:     fieldsync.Setter(scene.ColorBySetter.SetColorBy),
	}
	ModeField = fieldsync.Field[string]{
		Name:    "mode",
		Initial: "Surface",
		Get:     fieldsync.Getter(scene.ModeGetter.Mode),
		Set:     fieldsync.Setter(scene.ModeSetter.SetMode),
	}
	VisibilityField = fieldsync.Field[bool]{
		Name:    "visibility",
		Initial: true,
		Get:     fieldsync.Getter(scene.VisibilityGetter.Visibility),
		Set:     fieldsync.Setter(scene.VisibilitySetter.SetVisibility),
	}
	OpacityField = fieldsync.Field[float64]{
		Name:    "opacity",
		Initial: 1,
		Get:     fieldsync.Getter(scene.OpacityGetter.Opacity),
		Set:     fieldsync.Setter(scene.OpacitySetter.SetOpacity),
	}
	PointSizeField = fieldsync.Field[int]{
		Name:    "pointSize",
		Initial: 1,
		Get:     fieldsync.Getter(scene.PointSizeGetter.PointSize),
		Set:     fieldsync.Setter(scene.PointSizeSetter.SetPointSize),
	}
	SliceIndexField = fieldsync.Field[int]{
		Name:    "sliceIndex",
		Initial: 0,
		Get:     fieldsync.Getter(scene.SliceIndexGetter.SliceIndex),
		Set:     fieldsync.Setter(scene.SliceIndexSetter.SetSliceIndex),
	}
	BackgroundField = fieldsync.Field[string]{
		Name:    "background",
		Initial: "#000000",
		Get:     fieldsync.Getter(scene.BackgroundGetter.Background),
		Set:     fieldsync.Setter(scene.BackgroundSetter.SetBackground),
	}
	OrientationAxesField = fieldsync.Field[bool]{
		Name:    "orientationAxes",
		Initial: true,
		Get:     fieldsync.Getter(scene.OrientationAxesGetter.OrientationAxes),
		Set:     fieldsync.Setter(scene.OrientationAxesSetter.SetOrientationAxes),
	}
	ParallelProjectionField = fieldsync.Field[bool]{
		Name:    "parallelProjection",
		Initial: false,
		Get:     fieldsync.Getter(scene.ParallelProjectionGetter.ParallelProjection),
		Set:     fieldsync.Setter(scene.ParallelProjectionSetter.SetParallelProjection),
	}
)

// DefaultPanels returns the built-in panels.
func DefaultPanels() []Panel {
	return []Panel{
		{Name: "Color By", Priority: 10, Definition: fieldsync.Build(ColorByField)},
		{Name: "Information", Priority: 11, Definition: fieldsync.Build(NameField)},
		{Name: "Representation", Priority: 13, Definition: fieldsync.Build(
			ModeField, VisibilityField, OpacityField, PointSizeField,
		)},
		{Name: "Slice", Priority: 14, Definition: fieldsync.Build(SliceIndexField)},
		{Name: "View", Priority: 20, Definition: fieldsync.Build(
			BackgroundField, OrientationAxesField, ParallelProjectionField,
		)},
	}
}
