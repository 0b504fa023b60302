// Package main provides the entry point for the Pixel Pick application.
package main

import (
	"log"
	"os"
	"time"

	"pixelpick/internal/app"
	"pixelpick/internal/version"
	"pixelpick/ui/mainwindow"
	"pixelpick/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "Pixel Pick"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s (%s)", appTitle, version.Version, version.GitCommit)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.PickerTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()
	if err := appState.LoadPalette(app.PalettePath()); err != nil {
		log.Printf("Failed to load palette: %v", err)
	}

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetTitle(appTitle)
	win.SetOnClosed(win.SavePreferences)

	// Handle command line arguments
	if len(os.Args) > 1 {
		win.LoadImage(os.Args[1])
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: saving preferences before restart...")
					win.SavePreferences()
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
				} else {
					reloader.ResetBaseline()
					reloader.Start()
				}
			}, win.Window)
	})

	reloader.Start()
}
