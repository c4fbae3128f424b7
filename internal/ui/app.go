package ui

import (
	"InkBoard/internal/board"
	"InkBoard/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

func RunApp(cfg config.Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Window.Title)
	myWindow.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	session := board.New(cfg)
	boardWidget := NewBoardWidget(session)
	toolbar := NewToolbar(boardWidget, myWindow)

	content := container.NewBorder(toolbar, boardWidget.StatusBar(), nil, nil, boardWidget)
	myWindow.SetContent(content)

	session.Start(boardWidget.Surface())
	myWindow.SetOnClosed(session.Close)
	myWindow.ShowAndRun()
}
