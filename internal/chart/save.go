package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSaveName returns a timestamped filename for a saved chart.
func DefaultSaveName(now time.Time) string {
	return "chart_" + now.Format("20060102_150405") + ".png"
}

// SaveFile writes a rendered PNG under dir, creating the directory if
// needed. Names without an extension get .png appended.
func SaveFile(dir, name string, img []byte) (string, error) {
	if name == "" {
		name = DefaultSaveName(time.Now())
	}
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	path := filepath.Join(dir, filepath.Base(strings.TrimSpace(name)))
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}
