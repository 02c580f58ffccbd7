//go:build unix

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/dixieflatline76/Backdrop/config"
)

var (
	lockFile *os.File
)

// acquireLock tries to acquire a single-instance lock (file lock on Unix).
func acquireLock() (bool, error) {
	lockFilePath, err := lockPath()
	if err != nil {
		return false, err
	}
	file, err := os.OpenFile(lockFilePath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	err = unix.FcntlFlock(file.Fd(), unix.F_SETLK, &unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: 0,
		Start:  0,
		Len:    0, // Lock the entire file
	})
	if err != nil {
		file.Close()
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EACCES) {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	lockFile = file
	return true, nil
}

// releaseLock releases the single-instance lock.
func releaseLock() {
	if lockFile == nil {
		return
	}
	// The file stays in place; unlinking it would let a waiting instance lock an orphaned inode.
	unix.FcntlFlock(lockFile.Fd(), unix.F_SETLK, &unix.Flock_t{Type: unix.F_UNLCK})
	lockFile.Close()
	lockFile = nil
}

// lockPath returns a per-user lock file: $XDG_RUNTIME_DIR first, then the user cache dir,
// then a uid-qualified name in the temp dir.
func lockPath() (string, error) {
	name := strings.ToLower(config.AppName) + ".lock"

	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, name), nil
	}

	if cacheDir, err := os.UserCacheDir(); err == nil {
		dir := filepath.Join(cacheDir, strings.ToLower(config.AppName))
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", fmt.Errorf("failed to create lock dir: %w", err)
		}
		return filepath.Join(dir, name), nil
	}

	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.lock", strings.ToLower(config.AppName), os.Getuid())), nil
}
