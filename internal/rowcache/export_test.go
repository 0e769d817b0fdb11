package rowcache

import "time"

// SetClock overrides the store's time source.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
