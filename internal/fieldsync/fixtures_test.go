package fieldsync

import (
	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

type opacityGetter interface{ Opacity() float64 }
type opacitySetter interface{ SetOpacity(float64) }
type nameGetter interface{ Name() string }

var opacityField = Field[float64]{
	Name:    "opacity",
	Initial: 1,
	Get:     Getter(opacityGetter.Opacity),
	Set:     Setter(opacitySetter.SetOpacity),
}

var nameField = Field[string]{
	Name:    "name",
	Initial: "unnamed",
	Get:     Getter(nameGetter.Name),
}

// opacityProxy exposes opacity get/set and a descriptor tree.
type opacityProxy struct {
	label   string
	opacity float64
	ui      []descriptor.Node
	calls   *[]string
	onSet   func(float64)
	onGet   func()
	gets    int
}

func (p *opacityProxy) Opacity() float64 {
	p.gets++
	if p.onGet != nil {
		p.onGet()
	}
	return p.opacity
}

func (p *opacityProxy) SetOpacity(v float64) {
	p.opacity = v
	if p.calls != nil {
		*p.calls = append(*p.calls, p.label)
	}
	if p.onSet != nil {
		p.onSet(v)
	}
}

func (p *opacityProxy) UI() []descriptor.Node { return p.ui }

// plainProxy has a descriptor tree and no field capabilities.
type plainProxy struct {
	label string
	ui    []descriptor.Node
	onUI  func()
}

func (p *plainProxy) UI() []descriptor.Node {
	if p.onUI != nil {
		p.onUI()
	}
	return p.ui
}

type namedProxy struct{ name string }

func (p *namedProxy) Name() string { return p.name }

type repKey struct{ source, view Target }

type fakeListener struct {
	fn     func()
	active bool
}

// fakeBackend is an in-memory Backend with observable subscriptions.
type fakeBackend struct {
	views      []Target
	reps       map[repKey]Target
	listeners  []*fakeListener
	subscribed int
	released   int
	onRelease  func()
	viewCalls  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{reps: make(map[repKey]Target)}
}

func (b *fakeBackend) Views() []Target {
	b.viewCalls++
	return append([]Target(nil), b.views...)
}

func (b *fakeBackend) Representation(source, view Target) Target {
	if len(b.reps) == 0 {
		return nil
	}
	return b.reps[repKey{source, view}]
}

func (b *fakeBackend) OnRegistrationChange(fn func()) func() {
	b.subscribed++
	l := &fakeListener{fn: fn, active: true}
	b.listeners = append(b.listeners, l)
	return func() {
		if !l.active {
			return
		}
		if b.onRelease != nil {
			b.onRelease()
		}
		l.active = false
		b.released++
	}
}

func (b *fakeBackend) addView(view Target) {
	b.views = append(b.views, view)
}

func (b *fakeBackend) setRep(source, view, rep Target) {
	b.reps[repKey{source, view}] = rep
}

func (b *fakeBackend) emit() {
	for _, l := range append([]*fakeListener(nil), b.listeners...) {
		if l.active {
			l.fn()
		}
	}
}

func (b *fakeBackend) active() int {
	n := 0
	for _, l := range b.listeners {
		if l.active {
			n++
		}
	}
	return n
}

func leaf(name string, lo, hi float64, step descriptor.Step) descriptor.Leaf {
	return descriptor.Leaf{Name: name, Domain: descriptor.Range(lo, hi, step)}
}

func intLeaf(name string, lo, hi int, step descriptor.Step) descriptor.Leaf {
	return descriptor.Leaf{Name: name, Domain: descriptor.IntRange(lo, hi, step)}
}
