package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"dirhist/internal/search"
)

// SearchPanel contains all search-related widgets
type SearchPanel struct {
	PatternEntry    *widget.Entry
	IgnoreCaseCheck *widget.Check
	RootLabel       *widget.Label
	RootDir         string
	chooseRootBtn   *widget.Button
	searchBtn       *widget.Button
	stopBtn         *widget.Button
	plotBtn         *widget.Button
}

// CreateSearchPanel creates and returns search panel widgets
func CreateSearchPanel(window fyne.Window, log search.Logger) *SearchPanel {
	panel := &SearchPanel{
		PatternEntry:    widget.NewEntry(),
		IgnoreCaseCheck: widget.NewCheck("Ignore case", nil),
		RootLabel:       widget.NewLabel(""),
	}

	panel.PatternEntry.SetPlaceHolder(`Regular expression, e.g. \.go$`)
	panel.RootLabel.Wrapping = fyne.TextWrapWord

	panel.chooseRootBtn = widget.NewButton("Choose Root Directory", func() {
		d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				log.LogError("Failed to open directory: %v", err)
				dialog.ShowError(err, window)
				return
			}
			if uri == nil {
				return
			}
			panel.RootDir = uri.Path()
			log.LogInfo("Root directory set to %s", uri.Path())
			panel.updateRootLabel()
		}, window)
		d.Resize(fyne.NewSize(500, 400))
		d.Show()
	})

	panel.updateRootLabel()
	return panel
}

// AddSearchButton adds the search button to the panel
func (p *SearchPanel) AddSearchButton(btn *widget.Button) {
	p.searchBtn = btn
}

// AddStopButton adds the stop button to the panel
func (p *SearchPanel) AddStopButton(btn *widget.Button) {
	p.stopBtn = btn
}

// AddPlotButton adds the plot button to the panel
func (p *SearchPanel) AddPlotButton(btn *widget.Button) {
	p.plotBtn = btn
}

// GetContent returns the container with all search panel widgets
func (p *SearchPanel) GetContent() *fyne.Container {
	return container.NewVBox(
		p.chooseRootBtn,
		p.RootLabel,
		p.PatternEntry,
		p.IgnoreCaseCheck,
		p.searchBtn,
		p.stopBtn,
		p.plotBtn,
	)
}

func (p *SearchPanel) updateRootLabel() {
	if p.RootDir == "" {
		p.RootLabel.SetText("No root directory selected")
	} else {
		p.RootLabel.SetText("Root directory:\n" + p.RootDir)
	}
}
