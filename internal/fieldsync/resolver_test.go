package fieldsync

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func labels(targets []Target) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		switch p := t.(type) {
		case *opacityProxy:
			out = append(out, p.label)
		case *plainProxy:
			out = append(out, p.label)
		}
	}
	return out
}

func TestFindTargets_Order(t *testing.T) {
	backend := newFakeBackend()
	source := &opacityProxy{label: "source"}
	v1 := &opacityProxy{label: "v1"}
	v2 := &plainProxy{label: "v2"}
	v3 := &opacityProxy{label: "v3"}
	r1 := &opacityProxy{label: "r1"}
	r3 := &opacityProxy{label: "r3"}
	backend.addView(v1)
	backend.addView(v2)
	backend.addView(v3)
	backend.setRep(source, v1, r1)
	backend.setRep(source, v3, r3)

	got := FindTargets(Binding{Source: source, Backend: backend}, opacityField.canSet)

	require.Equal(t, []string{"source", "v1", "v3", "r1", "r3"}, labels(got))
}

func TestFindTargets_Empty(t *testing.T) {
	backend := newFakeBackend()
	backend.addView(&plainProxy{label: "view"})

	got := FindTargets(Binding{Source: &plainProxy{}, Backend: backend}, opacityField.canGet)

	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFindTargets_NoDuplicates(t *testing.T) {
	backend := newFakeBackend()
	source := &opacityProxy{label: "source"}
	view := &opacityProxy{label: "view"}
	backend.addView(view)
	backend.addView(view)
	// A backend that answers with the source itself as representation.
	backend.setRep(source, view, source)

	got := FindTargets(Binding{Source: source, Backend: backend}, opacityField.canGet)

	require.Equal(t, []string{"source", "view"}, labels(got))
}

func TestFindTargets_NonComparableTargetsKept(t *testing.T) {
	type sliceTarget []int
	backend := newFakeBackend()
	backend.addView(sliceTarget{1})
	backend.addView(sliceTarget{1})

	got := FindTargets(Binding{Backend: backend}, func(Target) bool { return true })

	require.Len(t, got, 2)
}

func TestFindTargets_QueriesBackendEveryCall(t *testing.T) {
	backend := newFakeBackend()
	b := Binding{Source: &plainProxy{}, Backend: backend}

	FindTargets(b, opacityField.canGet)
	FindTargets(b, opacityField.canGet)

	require.Equal(t, 2, backend.viewCalls)
}

func TestResolveTyped(t *testing.T) {
	backend := newFakeBackend()
	source := &opacityProxy{label: "source", opacity: 0.3}
	view := &opacityProxy{label: "view", opacity: 0.9}
	backend.addView(view)
	b := Binding{Source: source, Backend: backend}

	getters := ResolveGetters(b, opacityField)
	require.Len(t, getters, 2)
	require.Equal(t, 0.3, getters[0]())
	require.Equal(t, 0.9, getters[1]())

	setters := ResolveSetters(b, opacityField)
	require.Len(t, setters, 2)
	setters[1](0.1)
	require.Equal(t, 0.1, view.opacity)

	require.Empty(t, ResolveSetters(b, nameField))
}

func TestDescriptorTargets_Order(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{label: "source"}
	v1 := &plainProxy{label: "v1"}
	v2 := &plainProxy{label: "v2"}
	r2 := &plainProxy{label: "r2"}
	backend.addView(v1)
	backend.addView(v2)
	backend.setRep(source, v2, r2)

	got := descriptorTargets(Binding{Source: source, Backend: backend})

	require.Equal(t, []string{"source", "r2", "v1", "v2"}, labels(got))
}

// === Property Tests ===

func TestFindTargets_Property_OrderAndUniqueness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		backend := newFakeBackend()
		source := &opacityProxy{label: "source"}
		withGetter := rapid.Bool().Draw(t, "sourceHasGetter")
		var src Target = source
		if !withGetter {
			src = &plainProxy{label: "source"}
		}

		want := make([]string, 0)
		if withGetter {
			want = append(want, "source")
		}

		nViews := rapid.IntRange(0, 6).Draw(t, "views")
		var reps []string
		for i := 0; i < nViews; i++ {
			label := fmt.Sprintf("v%d", i)
			if rapid.Bool().Draw(t, "viewHasGetter") {
				backend.addView(&opacityProxy{label: label})
				want = append(want, label)
			} else {
				backend.addView(&plainProxy{label: label})
			}
			switch rapid.IntRange(0, 2).Draw(t, "rep") {
			case 0:
			case 1:
				backend.setRep(src, backend.views[i], &plainProxy{label: "r" + label})
			case 2:
				backend.setRep(src, backend.views[i], &opacityProxy{label: "r" + label})
				reps = append(reps, "r"+label)
			}
		}
		want = append(want, reps...)

		got := labels(FindTargets(Binding{Source: src, Backend: backend}, opacityField.canGet))
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v, want %v", got, want)
			}
		}
	})
}
