package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"dirhist/cmd/gui/utils"
	"dirhist/internal/config"
)

// SettingsPanel contains all settings-related widgets
type SettingsPanel struct {
	ExcludeDirsEntry    *widget.Entry
	FollowSymlinksCheck *widget.Check
}

// CreateSettingsPanel creates and returns settings panel widgets initialised from cfg
func CreateSettingsPanel(cfg *config.Config) *SettingsPanel {
	panel := &SettingsPanel{
		ExcludeDirsEntry:    widget.NewEntry(),
		FollowSymlinksCheck: widget.NewCheck("Follow symbolic links", nil),
	}

	panel.ExcludeDirsEntry.SetPlaceHolder("node_modules, .git")
	panel.ExcludeDirsEntry.SetText(utils.JoinCommaList(cfg.ExcludeDirs))
	panel.FollowSymlinksCheck.SetChecked(cfg.FollowSymlinks)

	return panel
}

// ExcludeDirs returns the directory names typed into the exclude entry
func (p *SettingsPanel) ExcludeDirs() []string {
	return utils.SplitCommaList(p.ExcludeDirsEntry.Text)
}

// GetContent returns the container with all settings panel widgets
func (p *SettingsPanel) GetContent() *fyne.Container {
	return container.NewVBox(
		widget.NewLabel("Skip directories:"),
		p.ExcludeDirsEntry,
		p.FollowSymlinksCheck,
	)
}
