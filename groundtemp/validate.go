package groundtemp

import (
	"fmt"

	"github.com/sarchlab/groundtemp/diag"
)

// advisoryRanger is implemented by variants that warn about implausible
// values. The check never fails construction.
type advisoryRanger interface {
	advisoryRange() (lo, hi float64)
}

// checkCardinality reports more than one object of a variant. Zero and one
// are accepted.
func checkCardinality(sink diag.Sink, name string, count int) bool {
	if count > 1 {
		sink.Severe(name + ": Too many objects entered. Only one allowed.")
		return false
	}

	return true
}

// checkFieldCount reports objects with fewer than twelve monthly values.
func checkFieldCount(sink diag.Sink, name string, numNumerics int) bool {
	if numNumerics < 12 {
		sink.Severe(name + ": Less than 12 values entered.")
		return false
	}

	return true
}

// checkAdvisoryRange emits a single advisory when any value is outside
// [lo, hi]. The bounds are inclusive.
func checkAdvisoryRange(
	sink diag.Sink,
	name string,
	values [12]float64,
	lo, hi float64,
) {
	for _, v := range values {
		if v < lo || v > hi {
			sink.Advisory(fmt.Sprintf(
				"%s: Some values fall outside the range of %g-%gC.",
				name, lo, hi))
			sink.Continue("These values may be inappropriate.  " +
				"Please consult the Input Output Reference for more details.")

			return
		}
	}
}

func writeAudit(sink diag.Sink, name string, values [12]float64) {
	sink.Audit("! <" + name + ">, Months From Jan to Dec {C}")

	line := " " + name
	for _, v := range values {
		line += fmt.Sprintf(", %6.2f", v)
	}

	sink.Audit(line)
}
