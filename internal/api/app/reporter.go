package app

import "deeploc/internal/ports"

// EmitterReporter funnels service errors into a frontend event so they
// surface as toasts instead of failing the call that hit them.
type EmitterReporter struct {
	Em ports.EventEmitter
}

func (r *EmitterReporter) ReportError(msg string) {
	if r.Em != nil {
		r.Em.Emit("app.error", msg)
	}
}
