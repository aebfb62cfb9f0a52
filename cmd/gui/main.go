package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"dirhist/cmd/gui/ui"
	"dirhist/internal/config"
	"dirhist/internal/logger"
	"dirhist/internal/plot"
	"dirhist/internal/search"
	"dirhist/internal/version"
)

// customTheme wraps the default theme to tint the primary button
type customTheme struct {
	base fyne.Theme
}

func (t *customTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	if n == theme.ColorNamePrimary {
		return color.NRGBA{R: 145, G: 85, B: 95, A: 255}
	}
	return t.base.Color(n, v)
}

func (t *customTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(n)
}

func (t *customTheme) Font(s fyne.TextStyle) fyne.Resource {
	return t.base.Font(s)
}

func (t *customTheme) Size(n fyne.ThemeSizeName) float32 {
	return t.base.Size(n)
}

func loadConfig() *config.Config {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Printf("Ignoring config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	log := logger.Default()
	defer logger.CloseDefault()

	a := app.New()
	a.Settings().SetTheme(&customTheme{base: a.Settings().Theme()})

	w := a.NewWindow(version.Title())

	searchPanel := ui.CreateSearchPanel(w, log)
	settingsPanel := ui.CreateSettingsPanel(cfg)
	searchPanel.IgnoreCaseCheck.SetChecked(cfg.IgnoreCase)

	progress := widget.NewProgressBarInfinite()
	progress.Hide()

	results := ui.CreateResultsList(log)
	statusLabel := widget.NewLabel("")
	statusLabel.Wrapping = fyne.TextWrapWord

	searchBtn := widget.NewButton("Start Search", nil)
	searchBtn.Importance = widget.HighImportance
	searchPanel.AddSearchButton(searchBtn)

	// engine is only touched from UI callbacks; the search goroutine keeps its own copy
	var engine *search.Engine
	var plotter *plot.Plotter

	stopBtn := widget.NewButton("Stop Search", func() {
		if engine != nil {
			log.LogInfo("Search stop requested by user")
			engine.Cancel()
		}
	})
	searchPanel.AddStopButton(stopBtn)

	plotBtn := widget.NewButton("Plot Result", func() {
		if engine == nil {
			dialog.ShowInformation("Plot", "Run a search first.", w)
			return
		}
		if plotter == nil {
			plotter = plot.NewPlotter(cfg.PlotDir, "Search for files in "+engine.Request().Root)
		}
		if err := plotter.Plot(engine.Result(), engine.Status()); err != nil {
			switch {
			case errors.Is(err, plot.ErrNotReady):
				dialog.ShowInformation("Plot", "Run a search to completion first.", w)
				return
			case errors.Is(err, plot.ErrNothingToPlot):
				dialog.ShowInformation("Plot", "No matches to plot.", w)
				return
			}
			log.LogError("Failed to plot result: %v", err)
			dialog.ShowError(err, w)
			return
		}
		showPlot(w, plotter, log)
	})
	searchPanel.AddPlotButton(plotBtn)

	settingsAccordion := widget.NewAccordion(
		widget.NewAccordionItem("Advanced Settings", settingsPanel.GetContent()),
	)
	settingsAccordion.Close(0)

	inputs := container.NewVBox(
		searchPanel.GetContent(),
		widget.NewSeparator(),
		settingsAccordion,
		widget.NewSeparator(),
		statusLabel,
		progress,
	)

	split := container.NewHSplit(
		container.NewVScroll(inputs),
		results.List,
	)
	split.SetOffset(0.35)

	w.SetContent(split)
	w.Resize(fyne.NewSize(800, 600))

	w.SetCloseIntercept(func() {
		if engine != nil {
			engine.Cancel()
		}
		if plotter != nil {
			if err := plotter.Clear(); err != nil {
				log.LogError("Failed to remove plot: %v", err)
			}
		}
		a.Quit()
	})

	searchBtn.OnTapped = func() {
		opts := cfg.SearchOptions(log)
		opts.IgnoreCase = searchPanel.IgnoreCaseCheck.Checked
		opts.FollowSymlinks = settingsPanel.FollowSymlinksCheck.Checked
		opts.ExcludeDirs = settingsPanel.ExcludeDirs()

		eng, err := search.New(searchPanel.RootDir, searchPanel.PatternEntry.Text, opts)
		if err != nil {
			log.LogWarning("Rejected search: %v", err)
			dialog.ShowError(err, w)
			return
		}

		if plotter != nil {
			plotter.Clear()
			plotter = nil
		}
		engine = eng
		results.SetRoot(eng.Request().Root)
		results.Set(search.Result{})

		searchBtn.Disable()
		plotBtn.Disable()
		progress.Show()
		statusLabel.SetText("Searching...")

		var dirty atomic.Bool
		sub := eng.Subscribe(func() { dirty.Store(true) })

		go func() {
			defer eng.Unsubscribe(sub)

			startTime := time.Now()
			done := make(chan search.Result, 1)
			go func() { done <- eng.Search(context.Background()) }()

			updateTicker := time.NewTicker(100 * time.Millisecond)
			defer updateTicker.Stop()

			for {
				select {
				case result := <-done:
					results.Set(result)
					searchBtn.Enable()
					plotBtn.Enable()
					progress.Hide()
					statusLabel.SetText(summary(eng.Status(), time.Since(startTime), result))
					return
				case <-updateTicker.C:
					if dirty.Swap(false) {
						results.Set(eng.Result())
					}
					statusLabel.SetText(fmt.Sprintf("Searching... %s", formatDuration(time.Since(startTime))))
				}
			}
		}()
	}

	w.ShowAndRun()
}

func showPlot(w fyne.Window, plotter *plot.Plotter, log search.Logger) {
	img := canvas.NewImageFromFile(plotter.Path())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(640, 320))

	openBtn := widget.NewButton("Open in Viewer", func() {
		if err := plotter.Show(); err != nil {
			log.LogError("Failed to open plot: %v", err)
			dialog.ShowError(err, w)
		}
	})

	dialog.NewCustom("Search Result", "Close", container.NewBorder(nil, openBtn, nil, nil, img), w).Show()
}

func summary(status search.Status, elapsed time.Duration, result search.Result) string {
	verb := "completed in"
	if status == search.StatusCancelled {
		verb = "stopped after"
	}
	return fmt.Sprintf("Search %s %s\n(%d matches in %d directories)",
		verb, formatDuration(elapsed), result.Total(), len(result))
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%d.%03d seconds", int(d.Seconds()), int(d.Milliseconds())%1000)
}
