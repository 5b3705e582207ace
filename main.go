package main

import (
	"embed"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	dbsqlite "deeploc/internal/adapters/db/sqlite"
	llmfactory "deeploc/internal/adapters/llm/factory"
	llmreg "deeploc/internal/adapters/llm/registry"
	"deeploc/internal/adapters/sheet/csvsheet"
	"deeploc/internal/adapters/sheet/excel"
	sheetreg "deeploc/internal/adapters/sheet/registry"
	apiapp "deeploc/internal/api/app"
	"deeploc/internal/domain"
	"deeploc/internal/ports"
	"deeploc/internal/store"
	jobsusecase "deeploc/internal/usecase/jobs"
	"deeploc/internal/usecase/sheetsync"
	translatorusecase "deeploc/internal/usecase/translator"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	logger := logrus.New()

	app := NewApp()

	db, dberr := dbsqlite.Init("data/deeploc.db")
	if dberr != nil {
		logger.Fatalf("open database: %v", dberr)
	}
	configRepo := dbsqlite.NewConfigRepo(db)
	cacheRepo := dbsqlite.NewCacheRepo(db)

	// Document store and spreadsheet codecs.
	doc := store.New()
	sheets := sheetreg.New()
	sheets.Register(excel.New())
	sheets.Register(csvsheet.New())
	sheetSvc := sheetsync.New(doc, sheets, logger)

	// Translator manager; the live error reporter is attached on startup
	// once the Wails context exists.
	reporter := &apiapp.EmitterReporter{}
	transSvc := translatorusecase.New(translatorusecase.Deps{
		Config:   configRepo,
		Cache:    cacheRepo,
		Reporter: reporter,
		Logger:   logger,
		BuildBackend: func(typeName string, cfg domain.BackendConfig) ports.Backend {
			return llmfactory.New(typeName, cfg)
		},
	})

	// Backend registry for the periodic health poll.
	backendReg := llmreg.New()

	// Sequential translation queue.
	runner := jobsusecase.NewRunner(jobsusecase.Deps{
		Store:      doc,
		Translator: transSvc,
		Logger:     logger,
	})
	app.SetServices(runner, transSvc, reporter)

	// API bindings
	documentAPI := apiapp.NewDocumentAPI(doc, app, logger)
	backendAPI := apiapp.NewBackendAPI(configRepo, transSvc, backendReg)
	queueAPI := apiapp.NewQueueAPI(doc, runner)
	sheetAPI := apiapp.NewSheetAPI(sheetSvc)

	err := wails.Run(&options.App{
		Title:  "deeploc",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
			documentAPI,
			backendAPI,
			queueAPI,
			sheetAPI,
		},
	})

	if err != nil {
		logger.Errorf("run: %v", err)
	}
}
