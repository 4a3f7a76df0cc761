package view

// Post queues effect for delivery on the UI goroutine. It is safe to call
// from any goroutine.
func (v *View) Post(effect Effect) {
	v.effectsMu.Lock()
	v.effects = append(v.effects, effect)
	wake := v.wake
	v.effectsMu.Unlock()

	if wake != nil {
		wake()
	}
}

// SetWake registers a function called whenever an effect is posted, so the
// main loop knows to run a frame.
func (v *View) SetWake(fn func()) {
	v.effectsMu.Lock()
	v.wake = fn
	v.effectsMu.Unlock()
}

// FlushEffects delivers queued effects to the plugins as a single update.
func (v *View) FlushEffects() bool {
	v.effectsMu.Lock()
	effects := v.effects
	v.effects = nil
	v.effectsMu.Unlock()

	if len(effects) == 0 {
		return false
	}
	v.update(Update{Effects: effects})
	return true
}
