package termcore

// Middleware intercepts every parser event before it reaches the dispatcher
// (§4.7 step 5). Dispatch is called with the event and a next function that
// applies the default mutation; a middleware may inspect/rewrite the event,
// skip next entirely (swallowing the event), or call next more than once.
//
// This collapses the teacher's one-function-field-per-operation shape into
// a single hook: the new dispatch architecture funnels every Kind through
// one apply method, so there is only one interception point left to wrap.
type Middleware struct {
	Dispatch func(ev TerminalOutput, next func(TerminalOutput))
}

// Merge combines two middlewares into one that runs m first, then other,
// around the same underlying next.
func (m *Middleware) Merge(other *Middleware) *Middleware {
	if m == nil {
		return other
	}
	if other == nil {
		return m
	}
	return &Middleware{
		Dispatch: func(ev TerminalOutput, next func(TerminalOutput)) {
			m.Dispatch(ev, func(ev TerminalOutput) {
				other.Dispatch(ev, next)
			})
		},
	}
}
