package datarecording

import (
	"github.com/sarchlab/groundtemp/diag"
	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/sim"
)

// TemperatureHook records every resolve of the models it is attached to.
type TemperatureHook struct {
	recorder   DataRecorder
	timeTeller sim.TimeTeller
}

// NewTemperatureHook creates the temperature table and returns a hook that
// fills it.
func NewTemperatureHook(
	recorder DataRecorder,
	timeTeller sim.TimeTeller,
) *TemperatureHook {
	recorder.CreateTable(TemperatureTable, TemperatureEntry{})

	return &TemperatureHook{
		recorder:   recorder,
		timeTeller: timeTeller,
	}
}

// Func records the resolved temperature.
func (h *TemperatureHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != groundtemp.HookPosResolve {
		return
	}

	m := ctx.Item.(groundtemp.Model)
	detail := ctx.Detail.(groundtemp.ResolveDetail)
	t, err := m.Temperature()

	h.recorder.InsertData(TemperatureTable, TemperatureEntry{
		Time:        float64(h.timeTeller.CurrentTime()),
		Object:      m.Name(),
		Variable:    m.VariableName(),
		Month:       detail.Month,
		FromSeconds: detail.FromSeconds,
		Valid:       err == nil,
		Temperature: t,
	})
}

// DiagnosticHook records every diagnostic message.
type DiagnosticHook struct {
	recorder DataRecorder
}

// NewDiagnosticHook creates the diagnostic table and returns a hook that
// fills it.
func NewDiagnosticHook(recorder DataRecorder) *DiagnosticHook {
	recorder.CreateTable(DiagnosticTable, DiagnosticEntry{})

	return &DiagnosticHook{recorder: recorder}
}

// Func records the diagnostic.
func (h *DiagnosticHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != diag.HookPosDiagnostic {
		return
	}

	r := ctx.Item.(diag.Record)

	h.recorder.InsertData(DiagnosticTable, DiagnosticEntry{
		Severity:     r.Severity.String(),
		Message:      r.Message,
		Continuation: r.Continuation,
	})

	if r.Severity == diag.Fatal {
		h.recorder.Flush()
	}
}
