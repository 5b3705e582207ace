package ports

// EventEmitter pushes events to the frontend (Wails runtime in production,
// a recorder in tests).
type EventEmitter interface {
	Emit(name string, payload any)
}

// ErrorReporter is the out-of-band error channel: services report and carry
// on instead of failing the caller.
type ErrorReporter interface {
	ReportError(msg string)
}
