package frame

import "time"

// spinWindow is the final stretch before a deadline that is busy-waited
// instead of slept.
const spinWindow = 200 * time.Microsecond

// Limiter holds the loop to a frame rate cap.
type Limiter struct {
	fps  int
	next time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter creates a limiter for fps frames per second. fps <= 0 disables it.
func NewLimiter(fps int) *Limiter {
	return &Limiter{fps: fps, now: time.Now, sleep: time.Sleep}
}

// SetFPS changes the cap. fps <= 0 disables it.
func (l *Limiter) SetFPS(fps int) {
	l.fps = fps
	l.next = time.Time{}
}

// FPS returns the configured cap.
func (l *Limiter) FPS() int {
	return l.fps
}

// Wait blocks until the next frame is due.
func (l *Limiter) Wait() {
	if l.fps <= 0 {
		l.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(l.fps)
	if l.next.IsZero() {
		l.next = l.now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := l.next.Sub(l.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			l.sleep(remaining - spinWindow)
		}
		if !l.now().Before(l.next) {
			break
		}
	}

	// Resync after a hitch so the loop does not race to catch up.
	if late := l.now().Sub(l.next); late > target {
		l.next = l.now().Add(target)
	}
}
