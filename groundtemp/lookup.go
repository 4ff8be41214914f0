package groundtemp

import "math"

// secondsPerMonth is the average month length of a 365-day year.
const secondsPerMonth = 365 * 24 * 3600 / 12

const secondsPerYear = 12 * secondsPerMonth

// monthFromSeconds converts elapsed simulated seconds to a month index the
// way EnergyPlus does, including two known quirks that are kept for output
// parity:
//
//   - Within the first year the quotient is taken over a whole year, so every
//     time in (0, 1 year] maps to month 1.
//   - Past the first year the month is wrapped with the IEEE remainder, which
//     rounds to the nearest multiple of 12 and can give 0 or negative months.
//
// It returns false for times that are not positive or not finite.
func monthFromSeconds(seconds float64) (int, bool) {
	switch {
	case math.IsInf(seconds, 0):
		return 0, false
	case seconds > 0 && seconds <= secondsPerYear:
		return int(math.Ceil(seconds / secondsPerYear)), true
	case seconds > secondsPerYear:
		month := math.Ceil(seconds / secondsPerYear)
		return int(math.Remainder(month, 12)), true
	default:
		return 0, false
	}
}

// GroundTemperature returns the temperature of the month the model was last
// resolved to.
func GroundTemperature(m Model) (float64, error) {
	return m.Temperature()
}

// GroundTemperatureAtSeconds resolves the model from elapsed simulated seconds
// and returns the temperature.
func GroundTemperatureAtSeconds(
	m Model,
	depth, seconds float64,
) (float64, error) {
	m.ResolveSeconds(depth, seconds)
	return m.Temperature()
}

// GroundTemperatureAtMonth resolves the model to a month (1 is January) and
// returns the temperature.
func GroundTemperatureAtMonth(
	m Model,
	_ float64,
	month int,
) (float64, error) {
	m.ResolveMonth(month)
	return m.Temperature()
}
