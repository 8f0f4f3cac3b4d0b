package app

func (a *Application) setupLifecycle() {
	// The first map is fetched once the UI loop runs so view updates land
	// on the main goroutine.
	a.fyneApp.Lifecycle().SetOnStarted(func() {
		a.view.SetRenderMode(a.controller.State().Mode)
		if err := a.controller.Render(); err != nil {
			a.logger.Warning("Application", "initial map render failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})

	a.window.SetOnClosed(func() {
		a.logger.Debug("Application", "window closed", nil)
	})
}
