package fieldsync

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSubscriptions_ReleaseLIFO(t *testing.T) {
	var s Subscriptions
	var order []int
	for i := 0; i < 3; i++ {
		s.Add(func() { order = append(order, i) })
	}
	s.Add(nil)
	require.Equal(t, 3, s.Len())

	s.Release()

	require.Equal(t, []int{2, 1, 0}, order)
	require.Equal(t, 0, s.Len())
}

func TestSubscriptions_ReleaseEmpty(t *testing.T) {
	var s Subscriptions
	require.NotPanics(t, s.Release)
}

func TestSubscriptions_PanickingCallbackNotRetried(t *testing.T) {
	var s Subscriptions
	calls := 0
	s.Add(func() { calls++ })
	s.Add(func() { panic("release failed") })

	require.Panics(t, s.Release)
	require.Equal(t, 1, s.Len())

	s.Release()
	require.Equal(t, 1, calls)
	require.Equal(t, 0, s.Len())
}

func TestSubscriptions_Property_EachReleasedOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		var s Subscriptions
		counts := make([]int, n)
		var order []int
		for i := 0; i < n; i++ {
			s.Add(func() {
				counts[i]++
				order = append(order, i)
			})
		}

		s.Release()
		s.Release()

		for i, c := range counts {
			if c != 1 {
				t.Fatalf("callback %d released %d times", i, c)
			}
		}
		for i, v := range order {
			if v != n-1-i {
				t.Fatalf("release order %v is not LIFO", order)
			}
		}
	})
}
