package clipboard

// Flash tracks the "just copied" marker shown next to a memo for a short
// time after a successful copy. Each Start returns a token; only the
// Expire call carrying the latest token clears the marker, so an older
// timer firing late cannot hide a newer copy.
type Flash struct {
	index  int
	token  uint64
	active bool
}

// Start marks index as just copied and returns the token its timer must present.
func (f *Flash) Start(index int) uint64 {
	f.token++
	f.index = index
	f.active = true
	return f.token
}

// Expire clears the marker if token is still the current one.
func (f *Flash) Expire(token uint64) bool {
	if !f.active || token != f.token {
		return false
	}
	f.active = false
	return true
}

// Active reports whether index currently shows the marker.
func (f *Flash) Active(index int) bool {
	return f.active && f.index == index
}

// Clear removes the marker and invalidates outstanding timers.
func (f *Flash) Clear() {
	f.token++
	f.active = false
}
