package testutil

import "github.com/zjrosen/vizsync/internal/scene"

// sourceData holds everything needed to add a source.
type sourceData struct {
	name    string
	kind    string
	dataset scene.Dataset
	hidden  bool
}

func defaultSource(name string) sourceData {
	return sourceData{
		name:    name,
		dataset: scene.Dataset{Dimensions: [3]int{10, 10, 10}},
	}
}

// SourceOption configures a source added by the builder.
type SourceOption func(*sourceData)

// Kind sets the source proxy kind. Empty uses the registry default.
func Kind(kind string) SourceOption {
	return func(s *sourceData) { s.kind = kind }
}

// Dimensions sets the dataset extent.
func Dimensions(x, y, z int) SourceOption {
	return func(s *sourceData) { s.dataset.Dimensions = [3]int{x, y, z} }
}

// Arrays sets the dataset's named arrays.
func Arrays(names ...string) SourceOption {
	return func(s *sourceData) { s.dataset.Arrays = names }
}

// Hidden hides every representation of the source after it is added.
func Hidden() SourceOption {
	return func(s *sourceData) { s.hidden = true }
}
