package wallpaper

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/Backdrop/config"
	"github.com/dixieflatline76/Backdrop/util/log"
)

// FileManager owns the working directory that holds the current source image and its
// fitted derivative.
type FileManager struct {
	rootDir string
}

// NewFileManager creates a new FileManager rooted at rootDir.
func NewFileManager(rootDir string) *FileManager {
	return &FileManager{rootDir: rootDir}
}

// Dir returns the working directory.
func (fm *FileManager) Dir() string {
	return fm.rootDir
}

// EnsureDir creates the working directory if needed.
func (fm *FileManager) EnsureDir() error {
	return config.EnsureDir(fm.rootDir)
}

// FittedPath returns where the fitted derivative of source goes, for the given extension.
func (fm *FileManager) FittedPath(source, ext string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(fm.rootDir, stem+FittedSuffix+ext)
}

// fittedStem returns the source stem of a fitted file name and whether name is one.
func fittedStem(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext != FittedExtJPEG && ext != FittedExtBMP {
		return "", false
	}
	stem := strings.TrimSuffix(name, ext)
	if !strings.HasSuffix(stem, FittedSuffix) || stem == FittedSuffix {
		return "", false
	}
	return strings.TrimSuffix(stem, FittedSuffix), true
}

// Cleanup removes the files Backdrop wrote for earlier wallpapers: current, every
// <stem>_fitted.jpg/.bmp in the working directory, and the sources those were made from.
// keep is never removed and unrelated files are left alone, as are subdirectories.
// Removal failures are logged, not returned. It returns the number of files removed.
func (fm *FileManager) Cleanup(current, keep string) int {
	entries, err := os.ReadDir(fm.rootDir)
	if err != nil {
		log.Printf("FileManager: cannot list %s: %v", fm.rootDir, err)
		return 0
	}

	owned := make(map[string]bool)
	if current != "" && fm.contains(current) {
		if stem, ok := fittedStem(filepath.Base(current)); ok {
			owned[stem] = true
		}
	}
	for _, entry := range entries {
		if stem, ok := fittedStem(entry.Name()); ok && entry.Type().IsRegular() {
			owned[stem] = true
		}
	}

	keepAbs := absOrSelf(keep)
	deleted := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		fullPath := filepath.Join(fm.rootDir, name)
		if absOrSelf(fullPath) == keepAbs {
			continue
		}

		_, isFitted := fittedStem(name)
		if !isFitted && !owned[strings.TrimSuffix(name, filepath.Ext(name))] {
			continue
		}

		if fm.remove(fullPath) {
			deleted++
		}
	}

	return deleted
}

// Discard removes files written by an iteration that did not complete.
func (fm *FileManager) Discard(paths ...string) {
	for _, p := range paths {
		if p == "" || !fm.contains(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			fm.remove(p)
		}
	}
}

func (fm *FileManager) remove(path string) bool {
	if err := os.Remove(path); err != nil {
		log.Printf("FileManager: failed to delete %s: %v", path, err)
		return false
	}
	log.Debugf("FileManager: deleted %s", path)
	return true
}

// contains reports whether path sits directly in the working directory.
func (fm *FileManager) contains(path string) bool {
	return absOrSelf(filepath.Dir(path)) == absOrSelf(fm.rootDir)
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
