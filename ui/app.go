package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/drsixthsense/lifelog-public/db"
	"github.com/drsixthsense/lifelog-public/pipeline"
	"github.com/drsixthsense/lifelog-public/utils"
)

// App represents the main application: one window that shows either the
// first-launch profile setup or the journal screen.
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	store      *db.DB
	logger     *utils.Logger
	pipe       *pipeline.Pipeline

	journalView *JournalView
}

// NewApp creates a new application instance.
func NewApp(config *utils.Config, configPath string, store *db.DB, logger *utils.Logger) *App {
	fyneApp := app.NewWithID("com.drsixthsense.lifelog")
	window := fyneApp.NewWindow("LifeLog")

	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	application := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		store:      store,
		logger:     logger,
		pipe:       pipeline.New(store, config, logger),
	}

	// Save window geometry on close, same file the rest of the config
	// lives in.
	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		application.config.UI.WindowWidth = int(size.Width)
		application.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(application.configPath, application.config); err != nil {
			application.logger.Error("Failed to save window size: %v", err)
		}
	})

	application.buildUI()

	return application
}

// buildUI decides between the setup form and the journal screen. Setup
// shows until the six required profile keys exist.
func (a *App) buildUI() {
	complete, err := a.store.HasCompleteProfile()
	if err != nil {
		a.logger.Error("Failed to check profile completeness: %v", err)
	}

	if !complete {
		a.showProfileSetup()
		return
	}
	a.showJournal()
}

// showJournal switches the window to the main journal screen.
func (a *App) showJournal() {
	a.journalView = NewJournalView(a)
	a.window.SetContent(a.journalView.Build())
}

// Run starts the application main loop.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Cleanup releases resources held by the application.
func (a *App) Cleanup() {
	a.logger.Info("Application cleanup")
}
