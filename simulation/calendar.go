package simulation

import (
	"github.com/sarchlab/groundtemp/datatransfer"
	"github.com/sarchlab/groundtemp/sim"
)

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// monthAndDay converts a day of a non-leap year (1..365) into a month and a
// day of the month.
func monthAndDay(dayOfYear int) (month, day int) {
	day = dayOfYear
	for m, n := range daysInMonth {
		if day <= n {
			return m + 1, day
		}

		day -= n
	}

	panic("day of year out of range")
}

type calendar struct {
	startDayOfYear   int
	timestepsPerHour int
}

func (c calendar) timestep() sim.VTimeInSec {
	return sim.Hour / sim.VTimeInSec(c.timestepsPerHour)
}

// clockAt returns the calendar of a timestep. Times are elapsed seconds since
// the start of the run, and the clock reports the end of the timestep.
func (c calendar) clockAt(step int) datatransfer.Clock {
	dt := c.timestep()
	start := sim.VTimeInSec(step) * dt
	end := start + dt

	dayIndex := c.startDayOfYear - 1 + int(start/sim.Day)
	dayOfYear := dayIndex%365 + 1
	month, day := monthAndDay(dayOfYear)

	secondsIntoDay := start - sim.VTimeInSec(int(start/sim.Day))*sim.Day
	stepInHour := step % c.timestepsPerHour

	return datatransfer.Clock{
		Year:          1 + dayIndex/365,
		Month:         month,
		DayOfMonth:    day,
		DayOfYear:     dayOfYear,
		Hour:          int(secondsIntoDay / sim.Hour),
		Minutes:       float64(stepInHour+1) * 60 / float64(c.timestepsPerHour),
		TimestepHours: dt.Hours(),
		ElapsedHours:  end.Hours(),
	}
}
