package workspace

import (
	"errors"
	"fmt"

	"github.com/zjrosen/vizsync/internal/scene"
)

// ErrNoRepresentation is returned when a source is not shown in any view.
var ErrNoRepresentation = errors.New("source has no representation")

// Datasets implements the dataset list actions.
type Datasets struct {
	registry *scene.Registry
}

// NewDatasets creates dataset helpers over registry.
func NewDatasets(registry *scene.Registry) Datasets {
	return Datasets{registry: registry}
}

// List returns the registered sources.
func (d Datasets) List() []*scene.Source {
	return d.registry.Sources()
}

// Visibility reports the visibility of the source's first representation.
func (d Datasets) Visibility(source *scene.Source) (bool, error) {
	reps := d.registry.RepresentationsOf(source)
	if len(reps) == 0 {
		return false, fmt.Errorf("visibility of %s: %w", source.Name(), ErrNoRepresentation)
	}
	return reps[0].Visibility(), nil
}

// ToggleVisibility inverts the first representation's visibility and applies
// the result to every representation of the source.
func (d Datasets) ToggleVisibility(source *scene.Source) (bool, error) {
	visible, err := d.Visibility(source)
	if err != nil {
		return false, err
	}
	visible = !visible
	for _, rep := range d.registry.RepresentationsOf(source) {
		rep.SetVisibility(visible)
	}
	return visible, nil
}

// Delete unregisters the source and renders all views.
func (d Datasets) Delete(source *scene.Source) error {
	if err := d.registry.DeleteProxy(source); err != nil {
		return err
	}
	d.registry.RenderAllViews()
	return nil
}
