package app

import (
	"path/filepath"

	"github.com/sqweek/dialog"
)

// Dialogs are the blocking native prompts the application shows. They are
// called from background goroutines, never from the render loop.
type Dialogs interface {
	Confirm(title, message string) bool
	SavePath(defaultPath string) (string, error)
	LoadPath(defaultPath string) (string, error)
	Error(title, message string)
}

// ErrCancelled is returned by the path dialogs when the user dismisses them.
var ErrCancelled = dialog.ErrCancelled

// nativeDialogs shows OS dialogs.
type nativeDialogs struct{}

func (nativeDialogs) Confirm(title, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}

func (nativeDialogs) SavePath(defaultPath string) (string, error) {
	return snapshotFile(defaultPath).Title("Save Scene").Save()
}

func (nativeDialogs) LoadPath(defaultPath string) (string, error) {
	return snapshotFile(defaultPath).Title("Load Scene").Load()
}

func (nativeDialogs) Error(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

func snapshotFile(defaultPath string) *dialog.FileBuilder {
	b := dialog.File().
		Filter("Scene Snapshots", "json").
		Filter("All Files", "*")
	if dir := filepath.Dir(defaultPath); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			b = b.SetStartDir(abs)
		}
	}
	return b
}
