package provider

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveExecutable finds the executable for a provider command.
// The search path is consulted first; when that fails, each declared
// fallback location is checked (with home-directory expansion). If nothing
// resolves, the best-effort name is returned and resolution is retried at
// execution time.
func ResolveExecutable(name string, fallbacks []string) string {
	if name == "" {
		return name
	}
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	for _, candidate := range fallbacks {
		path := ExpandHome(candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return path
		}
	}
	return name
}

// ExpandHome expands a leading "~/" to the user's home directory.
// Paths without the prefix are returned unchanged, as is everything when
// the home directory cannot be determined.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
