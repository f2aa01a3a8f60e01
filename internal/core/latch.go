package core

// KeyLatch turns a per-tick "key is held" signal into a single event
// fired when the key is released after having been held.
//
// Terminals report key presses, not releases, so a key counts as released
// on the first tick in which it is no longer reported.
type KeyLatch struct {
	held bool
}

// Update feeds the current held state and reports whether a
// press-then-release cycle completed on this tick.
func (l *KeyLatch) Update(down bool) bool {
	if down {
		l.held = true
		return false
	}
	if l.held {
		l.held = false
		return true
	}
	return false
}

// Held reports whether the key is currently considered down.
func (l *KeyLatch) Held() bool {
	return l.held
}

// Reset forgets any pending press.
func (l *KeyLatch) Reset() {
	l.held = false
}
