package simulation

import (
	"fmt"

	"github.com/sarchlab/groundtemp/datatransfer"
)

// TrendPlugin keeps a trend of one ground temperature variable so that its
// recent average and direction can be read from the exchange.
type TrendPlugin struct {
	VariableType string
	Depth        int

	global   int
	variable int
}

// NewTrendPlugin creates a TrendPlugin over the given variable.
func NewTrendPlugin(variableType string, depth int) *TrendPlugin {
	return &TrendPlugin{
		VariableType: variableType,
		Depth:        depth,
		variable:     datatransfer.NotFound,
	}
}

// GlobalName is the plugin global that mirrors the variable.
func (p *TrendPlugin) GlobalName() string {
	return p.VariableType + " Value"
}

// TrendName is the trend over GlobalName.
func (p *TrendPlugin) TrendName() string {
	return p.VariableType + " Trend"
}

// Name returns the plugin name.
func (p *TrendPlugin) Name() string {
	return "trend:" + p.VariableType
}

// Setup declares the global and the trend.
func (p *TrendPlugin) Setup(x *datatransfer.Exchange) error {
	x.RequestVariable(p.VariableType, EnvironmentKey)
	p.global = x.DeclareGlobal(p.GlobalName())

	_, err := x.DeclareTrend(p.TrendName(), p.GlobalName(), p.Depth)

	return err
}

// EndOfTimestep copies the variable into the trended global.
func (p *TrendPlugin) EndOfTimestep(x *datatransfer.Exchange) error {
	if p.variable == datatransfer.NotFound {
		h, err := x.VariableHandle(p.VariableType, EnvironmentKey)
		if err != nil {
			return err
		}

		if h == datatransfer.NotFound {
			return fmt.Errorf("variable %s, %s not available",
				p.VariableType, EnvironmentKey)
		}

		p.variable = h
	}

	v, err := x.VariableValue(p.variable)
	if err != nil {
		return err
	}

	return x.SetGlobalValue(p.global, v)
}
