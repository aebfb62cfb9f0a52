package ui

import (
	"fmt"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"dirhist/cmd/gui/explorer"
	"dirhist/internal/search"
)

// ResultsList shows one row per directory with its match count
type ResultsList struct {
	List *widget.List

	mu     sync.RWMutex
	root   string
	keys   []string
	counts search.Result
}

// CreateResultsList creates and returns a list widget for search results.
// Selecting a row opens that directory in the file manager.
func CreateResultsList(log search.Logger) *ResultsList {
	rl := &ResultsList{counts: search.Result{}}

	rl.List = widget.NewList(
		func() int {
			rl.mu.RLock()
			defer rl.mu.RUnlock()
			return len(rl.keys)
		},
		func() fyne.CanvasObject {
			return container.NewVBox(
				widget.NewLabel("Template Text That Is Long Enough"),
				widget.NewSeparator(),
			)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			rl.mu.RLock()
			defer rl.mu.RUnlock()
			if i >= len(rl.keys) {
				return
			}
			key := rl.keys[i]
			label := o.(*fyne.Container).Objects[0].(*widget.Label)
			label.SetText(fmt.Sprintf("%s  (%d)", key, rl.counts[key]))
		},
	)

	rl.List.OnSelected = func(id widget.ListItemID) {
		if dir, ok := rl.dirAt(id); ok {
			go explorer.ShowDirectory(dir, log)
		}
		rl.List.UnselectAll()
	}

	return rl
}

// SetRoot records the directory result keys are relative to
func (rl *ResultsList) SetRoot(root string) {
	rl.mu.Lock()
	rl.root = root
	rl.mu.Unlock()
}

// Set replaces the displayed result and refreshes the list
func (rl *ResultsList) Set(result search.Result) {
	rl.mu.Lock()
	rl.counts = result
	rl.keys = result.Keys()
	rl.mu.Unlock()
	rl.List.Refresh()
}

func (rl *ResultsList) dirAt(id widget.ListItemID) (string, bool) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if id < 0 || id >= len(rl.keys) {
		return "", false
	}
	key := rl.keys[id]
	if key == search.RootKey {
		return rl.root, true
	}
	return filepath.Join(rl.root, filepath.FromSlash(key)), true
}
