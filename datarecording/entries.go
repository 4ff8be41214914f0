package datarecording

// Table names used by the simulation.
const (
	TemperatureTable = "ground_temperature"
	DiagnosticTable  = "diagnostic"
	ModelTable       = "ground_temperature_model"
	RunInfoTable     = "run_info"
)

// TemperatureEntry is one resolved ground temperature.
type TemperatureEntry struct {
	Time        float64
	Object      string
	Variable    string
	Month       int
	FromSeconds bool
	Valid       bool
	Temperature float64
}

// DiagnosticEntry is one line of the error file.
type DiagnosticEntry struct {
	Severity     string
	Message      string
	Continuation bool
}

// ModelEntry describes one registered model.
type ModelEntry struct {
	Handle    int
	Object    string
	Variable  string
	UserInput bool
	Jan       float64
	Feb       float64
	Mar       float64
	Apr       float64
	May       float64
	Jun       float64
	Jul       float64
	Aug       float64
	Sep       float64
	Oct       float64
	Nov       float64
	Dec       float64
}

// MakeModelEntry fills the monthly columns from the twelve values.
func MakeModelEntry(
	handle int,
	object, variable string,
	userInput bool,
	t [12]float64,
) ModelEntry {
	return ModelEntry{
		Handle:    handle,
		Object:    object,
		Variable:  variable,
		UserInput: userInput,
		Jan:       t[0],
		Feb:       t[1],
		Mar:       t[2],
		Apr:       t[3],
		May:       t[4],
		Jun:       t[5],
		Jul:       t[6],
		Aug:       t[7],
		Sep:       t[8],
		Oct:       t[9],
		Nov:       t[10],
		Dec:       t[11],
	}
}

// Monthly returns the twelve values, January first.
func (e ModelEntry) Monthly() [12]float64 {
	return [12]float64{
		e.Jan, e.Feb, e.Mar, e.Apr, e.May, e.Jun,
		e.Jul, e.Aug, e.Sep, e.Oct, e.Nov, e.Dec,
	}
}

// RunInfoEntry is a property of the program run.
type RunInfoEntry struct {
	Property string
	Value    string
}
