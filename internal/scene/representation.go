package scene

import (
	"sync"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

// RepresentationProxy is the rendering of one source in one view.
type RepresentationProxy interface {
	Proxy
	Input() *Source
	View() *View
	OpacityGetter
	OpacitySetter
	VisibilityGetter
	VisibilitySetter
	ColorByGetter
	ColorBySetter
}

type representation struct {
	base
	mu         sync.RWMutex
	input      *Source
	view       *View
	opacity    float64
	visibility bool
	colorBy    string
}

func newRepresentation(kind string, ui []descriptor.Node, input *Source, view *View) representation {
	return representation{
		base:       newBase(GroupRepresentations, kind, ui),
		input:      input,
		view:       view,
		opacity:    1,
		visibility: true,
	}
}

func (r *representation) Input() *Source { return r.input }
func (r *representation) View() *View    { return r.view }

func (r *representation) Opacity() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opacity
}

func (r *representation) SetOpacity(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opacity = v
}

func (r *representation) Visibility() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visibility
}

func (r *representation) SetVisibility(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visibility = visible
}

func (r *representation) ColorBy() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.colorBy
}

func (r *representation) SetColorBy(array string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colorBy = array
}

// Geometry renders a source as a surface in a 3D view.
type Geometry struct {
	representation
	pointSize int
	mode      string
}

func (g *Geometry) PointSize() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pointSize
}

func (g *Geometry) SetPointSize(size int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pointSize = size
}

// Modes lists the surface modes a Geometry accepts.
var Modes = []string{"Surface", "Wireframe", "Points"}

// Mode returns the surface mode, one of Modes.
func (g *Geometry) Mode() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

func (g *Geometry) SetMode(mode string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mode = mode
}

// Slice renders one slice of a source in a 2D view.
type Slice struct {
	representation
	sliceIndex int
}

func (s *Slice) SliceIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sliceIndex
}

func (s *Slice) SetSliceIndex(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sliceIndex = index
}

// UI bounds the slice index by the input's extent along the view axis.
func (s *Slice) UI() []descriptor.Node {
	extent := s.input.Dataset().Dimensions[axisIndex(s.view.Axis())]
	if extent <= 0 {
		return s.ui
	}
	return withDomain(s.ui, "sliceIndex", descriptor.IntRange(0, extent-1, descriptor.Fixed(1)))
}

func axisIndex(axis string) int {
	switch axis {
	case "y":
		return 1
	case "z":
		return 2
	default:
		return 0
	}
}

// withDomain returns a copy of nodes with the domain of every leaf named name replaced.
func withDomain(nodes []descriptor.Node, name string, d descriptor.Domain) []descriptor.Node {
	out := make([]descriptor.Node, 0, len(nodes))
	for _, n := range nodes {
		switch node := n.(type) {
		case descriptor.Leaf:
			if node.Name == name {
				node.Domain = d
			}
			out = append(out, node)
		case descriptor.Branch:
			out = append(out, descriptor.Branch{Children: withDomain(node.Children, name, d)})
		default:
			out = append(out, n)
		}
	}
	return out
}
