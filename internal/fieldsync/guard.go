package fieldsync

// GuardState is the state of a Guard.
type GuardState int

const (
	Idle GuardState = iota
	Updating
)

func (s GuardState) String() string {
	if s == Updating {
		return "updating"
	}
	return "idle"
}

// Guard rejects re-entrant runs of one operation.
type Guard struct {
	state GuardState
}

// TryAcquire moves the guard to Updating. It reports false when an update is
// already in flight. The returned release restores Idle and is meant to be
// deferred so every exit path, panics included, resets the guard.
func (g *Guard) TryAcquire() (release func(), ok bool) {
	if g.state == Updating {
		return func() {}, false
	}
	g.state = Updating
	released := false
	return func() {
		if released {
			return
		}
		released = true
		g.state = Idle
	}, true
}

// State returns the current state.
func (g *Guard) State() GuardState {
	return g.state
}
