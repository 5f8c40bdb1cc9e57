package scene

import (
	"sync"

	"github.com/google/uuid"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

// Group is the registry group a proxy belongs to.
type Group string

const (
	GroupSources         Group = "Sources"
	GroupViews           Group = "Views"
	GroupRepresentations Group = "Representations"
)

// Proxy is any object registered in the scene.
type Proxy interface {
	ID() string
	Group() Group
	Kind() string
	UI() []descriptor.Node
}

type base struct {
	id    string
	group Group
	kind  string
	ui    []descriptor.Node
}

func newBase(group Group, kind string, ui []descriptor.Node) base {
	return base{id: uuid.NewString(), group: group, kind: kind, ui: ui}
}

func (b *base) ID() string            { return b.id }
func (b *base) Group() Group          { return b.group }
func (b *base) Kind() string          { return b.kind }
func (b *base) UI() []descriptor.Node { return b.ui }

// Dataset summarizes the data a source produces.
type Dataset struct {
	Dimensions [3]int   `json:"dimensions"`
	Arrays     []string `json:"arrays,omitempty"`
}

// Source is a dataset proxy.
type Source struct {
	base
	mu      sync.RWMutex
	name    string
	dataset Dataset
}

// Name returns the display name.
func (s *Source) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// SetName renames the source.
func (s *Source) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// Dataset returns the dataset summary.
func (s *Source) Dataset() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// View renders representations. There is at most one view per view type.
type View struct {
	base
	mu          sync.RWMutex
	axis        string
	background  string
	axes        bool
	parallel    bool
	renders     int
	cameraReset int
	width       int
	height      int
}

// Type returns the view type, e.g. "View3D".
func (v *View) Type() string { return v.kind }

// Axis returns the slicing axis of a 2D view, or "" for 3D.
func (v *View) Axis() string { return v.axis }

func (v *View) Background() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.background
}

func (v *View) SetBackground(color string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.background = color
}

func (v *View) OrientationAxes() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.axes
}

func (v *View) SetOrientationAxes(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.axes = visible
}

func (v *View) ParallelProjection() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.parallel
}

func (v *View) SetParallelProjection(parallel bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.parallel = parallel
}

// Render records a render pass.
func (v *View) Render() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders++
}

// Renders returns how many times the view was rendered.
func (v *View) Renders() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.renders
}

// ResetCamera records a camera reset.
func (v *View) ResetCamera() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cameraReset++
}

// CameraResets returns how many times the camera was reset.
func (v *View) CameraResets() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cameraReset
}

// Resize sets the viewport size in cells.
func (v *View) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width, v.height = width, height
}

// Size returns the viewport size.
func (v *View) Size() (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}
