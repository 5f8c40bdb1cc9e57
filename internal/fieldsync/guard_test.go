package fieldsync

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGuard_RejectsReentry(t *testing.T) {
	var g Guard

	release, ok := g.TryAcquire()
	require.True(t, ok)
	require.Equal(t, Updating, g.State())

	_, ok = g.TryAcquire()
	require.False(t, ok)

	release()
	require.Equal(t, Idle, g.State())

	_, ok = g.TryAcquire()
	require.True(t, ok)
}

func TestGuard_ReleaseIsIdempotent(t *testing.T) {
	var g Guard
	release, _ := g.TryAcquire()
	release()

	second, ok := g.TryAcquire()
	require.True(t, ok)

	release()
	require.Equal(t, Updating, g.State(), "stale release must not reset a newer acquisition")
	second()
	require.Equal(t, Idle, g.State())
}

func TestGuard_ResetOnPanic(t *testing.T) {
	var g Guard
	run := func() {
		release, ok := g.TryAcquire()
		require.True(t, ok)
		defer release()
		panic("getter failed")
	}

	require.Panics(t, run)
	require.Equal(t, Idle, g.State())
}

func TestGuardState_String(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "updating", Updating.String())
}

func TestGuard_Property_AtMostOneHolder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var g Guard
		var held func()
		ops := rapid.SliceOfN(rapid.Bool(), 1, 50).Draw(t, "ops")
		for _, acquire := range ops {
			if acquire {
				release, ok := g.TryAcquire()
				if ok == (held != nil) {
					t.Fatalf("acquire ok=%v while held=%v", ok, held != nil)
				}
				if ok {
					held = release
				}
				continue
			}
			if held != nil {
				held()
				held = nil
			}
			if g.State() != Idle {
				t.Fatalf("guard not idle after release")
			}
		}
	})
}
