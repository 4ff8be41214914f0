package sim

// HookPos names a point where hooks run. Positions are compared by pointer,
// so each package declares its own as package-level variables.
type HookPos struct {
	Name string
}

func (p *HookPos) String() string {
	return p.Name
}

// HookCtx describes one hook invocation.
//
// Domain is the object invoking the hook (an engine, a model, a registry, or
// the diagnostics logger). Item is the subject at that position, such as the
// event being handled or the model just resolved. Detail carries extra data
// some positions define, for example a ResolveDetail or a Handle.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable objects accept hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// HookPosBeforeEvent runs before the engine handles an event.
var HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent runs after an event was handled without error.
var HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

// Hook is called by a Hookable at each of its hook positions.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc turns a plain function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// AtPos returns a hook that calls f only at pos.
func AtPos(pos *HookPos, f HookFunc) Hook {
	return HookFunc(func(ctx HookCtx) {
		if ctx.Pos == pos {
			f(ctx)
		}
	})
}

// HookableBase implements Hookable. The zero value is ready to use. Hooks are
// added during setup and invoked on the goroutine that owns the object.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook adds a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks added.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook calls every hook in the order they were added.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
