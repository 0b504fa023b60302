// Package mainwindow provides the demo application window.
package mainwindow

import (
	"context"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pixelpick/internal/app"
	"pixelpick/internal/source"
	"pixelpick/ui/picker"
	"pixelpick/ui/prefs"
)

const (
	prefKeyLastDir   = "lastDirectory"
	prefKeyLastImage = "lastImage"
	prefKeyZoom      = "magnifierZoom"
	prefKeyAverage   = "averageRadius"
)

// MainWindow is the demo application window: a scrollable 1:1 view of the
// loaded image, pick controls, a status bar and the picked-color history.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	picker *picker.Picker

	image     *fynecanvas.Image
	statusBar *widget.Label
	history   *fyne.Container
}

// New creates the demo window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Pixel Pick")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.picker = picker.New(picker.Config{
		Magnifier: picker.MagnifierConfig{
			Zoom:          appPrefs.Int(prefKeyZoom, 0),
			AverageRadius: appPrefs.Int(prefKeyAverage, 0),
		},
		OnPick: mw.recordPick,
	})

	mw.setupUI()
	mw.restoreLastImage()
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.image = &fynecanvas.Image{}
	mw.image.ScaleMode = fynecanvas.ImageScalePixels
	mw.image.FillMode = fynecanvas.ImageFillOriginal

	mw.statusBar = widget.NewLabel("Open an image to start picking")
	mw.history = container.NewHBox()

	toolbar := container.NewHBox(
		widget.NewButton("Open Image…", mw.openImage),
		widget.NewButton("Pick Color", mw.pickColor),
		widget.NewButton("Pick from URL…", mw.pickFromURL),
	)

	content := container.NewBorder(
		toolbar,
		container.NewVBox(mw.history, mw.statusBar),
		nil,
		nil,
		container.NewScroll(mw.image),
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(900, 700))
}

// openImage loads a file chosen by the user and shows it 1:1, so buffer and
// display coordinates line up exactly.
func (mw *MainWindow) openImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		mw.LoadImage(path)
	}, mw.Window)

	if lastDir := mw.prefs.String(prefKeyLastDir); lastDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(lastDir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".tiff", ".tif", ".bmp"}))
	fd.Show()
}

// LoadImage loads an image file and displays it at native resolution.
func (mw *MainWindow) LoadImage(path string) {
	img, err := source.Load(context.Background(), path)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}

	mw.state.SetImage(path, img)
	mw.image.Image = img
	mw.image.SetMinSize(fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
	mw.image.Refresh()
	mw.statusBar.SetText(path)

	mw.prefs.SetString(prefKeyLastImage, path)
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
}

func (mw *MainWindow) restoreLastImage() {
	if last := mw.prefs.String(prefKeyLastImage); last != "" {
		mw.LoadImage(last)
	}
}

// pickColor starts a pick session over the loaded image.
func (mw *MainWindow) pickColor() {
	if mw.state.Image() == nil {
		mw.statusBar.SetText("No image loaded")
		return
	}

	results, err := mw.picker.Open(mw.image)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.statusBar.SetText("Click a pixel to pick its color (click outside to cancel)")
	go mw.awaitResult(results)
}

// pickFromURL loads a remote image onto a temporary surface and picks from it.
func (mw *MainWindow) pickFromURL() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("https://example.com/image.png")

	dialog.ShowForm("Pick from URL", "Load", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("URL", entry)},
		func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			results, err := mw.picker.OpenFromSource(mw.Canvas(), entry.Text, &picker.Placement{
				Width:  500,
				Height: 400,
			})
			if err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.statusBar.SetText("Loading " + entry.Text + "…")
			go mw.awaitResult(results)
		}, mw.Window)
}

func (mw *MainWindow) awaitResult(results <-chan picker.Result) {
	res := <-results
	if res.Err != nil {
		log.Printf("pick session ended: %v", res.Err)
		mw.statusBar.SetText("Pick cancelled")
		return
	}
	// recordPick already ran via OnPick; just confirm in the status bar.
	mw.statusBar.SetText("Picked " + res.Sample.Color.Hex())
}

// recordPick stores the picked color and refreshes the history strip.
func (mw *MainWindow) recordPick(s picker.Sample) {
	mw.state.AddPick(s.Color)
	mw.refreshHistory()
}

func (mw *MainWindow) refreshHistory() {
	swatches := make([]fyne.CanvasObject, 0, len(mw.state.History()))
	for _, c := range mw.state.History() {
		r := fynecanvas.NewRectangle(c)
		r.SetMinSize(fyne.NewSize(24, 24))
		swatches = append(swatches, r)
	}
	mw.history.Objects = swatches
	mw.history.Refresh()
}

// SavePreferences persists preferences and the pick palette.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
	if err := mw.state.SavePalette(app.PalettePath()); err != nil {
		log.Printf("Failed to save palette: %v", err)
	}
}
