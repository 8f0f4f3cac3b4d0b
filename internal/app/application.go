package app

import (
	"runtime"

	"static-map-viewer/internal/config"
	"static-map-viewer/internal/controllers"
	"static-map-viewer/internal/logger"
	"static-map-viewer/internal/services"
	"static-map-viewer/internal/shutdown"
	"static-map-viewer/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Static Map Viewer"
	AppID      = "com.staticmapviewer.app"
	AppVersion = "1.0.0"
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *views.MainView
	controller *controllers.MapController
	shutdown   *shutdown.Manager
	logger     logger.Logger
}

// NewApplication wires configuration, services, controller and view.
func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.SetFixedSize(true)
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":        AppVersion,
		"go_version":     runtime.Version(),
		"static_map_url": cfg.StaticMapURL,
		"geocode_url":    cfg.GeocodeURL,
		"image_path":     cfg.ImagePath,
		"retry_max":      cfg.Retry.MaxRetries,
	})

	httpClient := services.NewHTTPClient(cfg.RequestTimeout, log)
	staticMaps := services.NewStaticMapService(cfg, httpClient, log)
	geocoder := services.NewGeocodeService(cfg, httpClient, log)

	controller := controllers.NewMapController(staticMaps, geocoder, log)
	view := views.NewMainView(window, staticMaps.ImagePath())
	controller.SetMapView(view)

	shutdownManager := shutdown.NewManager(log)
	shutdownManager.Register("map controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		shutdown:   shutdownManager,
		logger:     log,
	}

	application.setupLifecycle()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

// Run shows the window and blocks until the UI loop exits.
func (a *Application) Run() error {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)

	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
