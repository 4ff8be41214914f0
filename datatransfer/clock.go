package datatransfer

// Clock is the simulation calendar as seen by plugins.
type Clock struct {
	Year          int
	Month         int
	DayOfMonth    int
	DayOfYear     int
	Hour          int
	Minutes       float64
	TimestepHours float64
	ElapsedHours  float64
	Warmup        bool
}

// CurrentTime returns the time of day in hours.
func (c Clock) CurrentTime() float64 {
	return float64(c.Hour) + c.Minutes/60
}

// SetClock publishes the calendar of the current timestep.
func (x *Exchange) SetClock(c Clock) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.clock = c
}

// Clock returns the calendar of the current timestep.
func (x *Exchange) Clock() (Clock, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if !x.ready {
		return Clock{}, ErrNotReady
	}

	return x.clock, nil
}
