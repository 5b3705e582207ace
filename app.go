package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	apiapp "deeploc/internal/api/app"
	jobsusecase "deeploc/internal/usecase/jobs"
	translatorusecase "deeploc/internal/usecase/translator"
)

// App struct
type App struct {
	ctx      context.Context
	runner   *jobsusecase.Runner
	trans    *translatorusecase.Service
	reporter *apiapp.EmitterReporter
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts. The context is saved so runtime
// methods can be called; the persisted backend selection is restored here.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.reporter != nil {
		a.reporter.Em = a
	}
	if a.runner != nil {
		a.runner.SetEmitter(a)
	}
	if a.trans != nil {
		if err := a.trans.LoadConfig(ctx); err != nil {
			a.Emit("app.error", err.Error())
		}
	}
}

// SetServices lets main() provide the queue runner and translator so the
// event emitter can be wired on startup.
func (a *App) SetServices(r *jobsusecase.Runner, t *translatorusecase.Service, rep *apiapp.EmitterReporter) {
	a.runner = r
	a.trans = t
	a.reporter = rep
}

// Emit forwards an event to the frontend.
func (a *App) Emit(name string, payload any) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, name, payload)
}
