package ui

import (
	"image/color"

	"InkBoard/internal/gesture"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".webp"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			board.SetMode(gesture.ModeWrite)
		}), // Pen
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			board.SetMode(gesture.ModeErase)
		}), // Eraser
		widget.NewToolbarAction(theme.ContentCutIcon(), func() {
			board.SetMode(gesture.ModeSelect)
		}), // Lasso
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), func() {
			showInsertImage(board, win)
		}),
		widget.NewToolbarAction(theme.ZoomFitIcon(), board.ResetView),
	)

	// --- Color Palette ---
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, board.SetColor),
		newColorSwatch(color.NRGBA{R: 255, A: 255}, board.SetColor),         // Red
		newColorSwatch(color.NRGBA{G: 255, A: 255}, board.SetColor),         // Green
		newColorSwatch(color.NRGBA{B: 255, A: 255}, board.SetColor),         // Blue
		newColorSwatch(color.NRGBA{R: 255, G: 255, A: 255}, board.SetColor), // Yellow
	)

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(board.Session().StrokeStyle().Width)
	strokeSlider.OnChanged = board.SetStroke
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	multi := widget.NewCheck("Multi-write", board.Session().SetMultiWriteEnabled)
	multi.SetChecked(board.Session().MultiWriteEnabled())

	clearBtn := widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), func() {
		dialog.ShowConfirm("Clear board", "Remove every stroke and image?", func(ok bool) {
			if ok {
				board.ClearPaths()
			}
		}, win)
	})

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		multi,
		layout.NewSpacer(),
		clearBtn,
	)
}

func showInsertImage(board *BoardWidget, win fyne.Window) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		board.InsertImage(reader.URI().String())
	}, win)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fd.Show()
}
