package datatransfer

import (
	"encoding/csv"
	"strings"
)

// ListAllDataCSV describes every exchange point, one per row, as
// kind,type,control,key,units.
func (x *Exchange) ListAllDataCSV() (string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if !x.ready {
		return "", ErrNotReady
	}

	var b strings.Builder
	w := csv.NewWriter(&b)

	rows := [][]string{{"Kind", "Type", "Control", "Key", "Units"}}
	for _, a := range x.actuators {
		rows = append(rows, []string{
			"Actuator", a.componentType, a.controlType, a.key, a.units,
		})
	}

	for _, v := range x.internals {
		rows = append(rows, []string{
			"InternalVariable", v.Type, "", v.Key, v.units,
		})
	}

	for _, g := range x.globals {
		rows = append(rows, []string{"PluginGlobalVariable", g.name, "", "", ""})
	}

	for _, t := range x.trends {
		rows = append(rows, []string{"PluginTrendVariable", t.name, "", "", ""})
	}

	for _, m := range x.meters {
		rows = append(rows, []string{"OutputMeter", m.name, "", "", ""})
	}

	for _, v := range x.variables {
		rows = append(rows, []string{"OutputVariable", v.Type, "", v.Key, ""})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}

	return b.String(), nil
}
