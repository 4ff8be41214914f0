package sim

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// Common durations in the simulated space.
const (
	Second VTimeInSec = 1
	Minute            = 60 * Second
	Hour              = 60 * Minute
	Day               = 24 * Hour
)

// Hours converts the time into fractional hours.
func (t VTimeInSec) Hours() float64 {
	return float64(t / Hour)
}

// Days converts the time into fractional days.
func (t VTimeInSec) Days() float64 {
	return float64(t / Day)
}
