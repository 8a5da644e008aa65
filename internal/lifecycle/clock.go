package lifecycle

import "time"

// Clock is the injectable current-time source used by the classifier, the
// renewal tracker and the notification feed. Tests substitute a manual clock
// instead of waiting on wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
