// Package runtimepath resolves filesystem locations for the daemon's
// command socket and per-subscriber notification sockets, following the
// XDG runtime-directory convention.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Dir returns the runtime directory used for komotile's sockets. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/komotile-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/komotile-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the daemon's command socket path for the given
// configured socket name (config.Config.SocketName).
func SocketPath(socketName string) (string, error) {
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, socketName), nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SubscriberSocketPath returns the well-known listener socket path for a
// named notification-bus subscriber: a named listener socket at a
// well-known path derived from name. Characters outside [A-Za-z0-9_.-]
// are replaced with "_" so a subscriber name can't escape the runtime
// directory.
func SubscriberSocketPath(name string) (string, error) {
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	safe := unsafeNameChars.ReplaceAllString(name, "_")
	return filepath.Join(runtimeDir, fmt.Sprintf("komotile-sub-%s.sock", safe)), nil
}
