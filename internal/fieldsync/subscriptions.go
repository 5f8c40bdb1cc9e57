package fieldsync

// Subscriptions holds release callbacks in registration order.
type Subscriptions struct {
	releases []func()
}

// Add appends release. Nil callbacks are ignored.
func (s *Subscriptions) Add(release func()) {
	if release == nil {
		return
	}
	s.releases = append(s.releases, release)
}

// Len returns the number of callbacks not yet released.
func (s *Subscriptions) Len() int {
	return len(s.releases)
}

// Release invokes every callback in reverse registration order and empties the set.
// Each callback is removed before it runs, so a panicking callback is never retried.
func (s *Subscriptions) Release() {
	for len(s.releases) > 0 {
		last := len(s.releases) - 1
		release := s.releases[last]
		s.releases[last] = nil
		s.releases = s.releases[:last]
		release()
	}
}
