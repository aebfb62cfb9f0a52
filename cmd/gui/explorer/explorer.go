package explorer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"fyne.io/fyne/v2/dialog"

	"dirhist/internal/search"
)

// ShowDirectory opens dir in the platform file manager
func ShowDirectory(dir string, log search.Logger) {
	absPath, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		log.LogError("Failed to get absolute path: %v", err)
		dialog.ShowError(fmt.Errorf("Failed to get directory path: %v", err), nil)
		return
	}

	if _, err := os.Stat(absPath); err != nil {
		log.LogError("Directory no longer exists or inaccessible: %v", err)
		dialog.ShowError(fmt.Errorf("Directory no longer exists or inaccessible: %v", err), nil)
		return
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		absPath = strings.ReplaceAll(absPath, "/", "\\")
		cmdPath := os.Getenv("COMSPEC")
		if cmdPath == "" {
			cmdPath = `C:\Windows\System32\cmd.exe`
		}
		cmd = exec.Command(cmdPath, "/c", "start", "explorer.exe", absPath)
	case "darwin":
		cmd = exec.Command("open", absPath)
	default:
		cmd = exec.Command("xdg-open", absPath)
	}

	if err := cmd.Run(); err != nil {
		log.LogError("Failed to open file manager: %v", err)
		dialog.ShowError(fmt.Errorf("Failed to open file manager: %v", err), nil)
	}
}
