package gioui

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gioui.org/unit"
	"github.com/vsariola/levelmeter/monitor"
	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Window WindowPreferences
		// RefreshRate is how many times per second peaks are pushed into
		// the meter. The meter ballistics are per push, so this also sets
		// how fast the meter falls.
		RefreshRate int `yaml:"refreshrate"`
		Accent      string
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

const (
	minRefreshRate = 10
	maxRefreshRate = 240
)

// MakePreferences returns the embedded defaults overlaid with the user's
// preferences.yml. The error is only informative: the returned preferences
// are always usable.
func MakePreferences() (Preferences, error) {
	var p Preferences
	if err := yaml.UnmarshalStrict(defaultPreferencesYaml, &p); err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	err := readCustomPreferences(&p)
	p.RefreshRate = min(max(p.RefreshRate, minRefreshRate), maxRefreshRate)
	return p, err
}

func readCustomPreferences(target *Preferences) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(configDir, monitor.ConfigDirName, "preferences.yml")
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	if err := yaml.UnmarshalStrict(b, target); err != nil {
		return fmt.Errorf("preferences %v: %w", path, err)
	}
	return nil
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}

func (p Preferences) TickInterval() time.Duration {
	return time.Second / time.Duration(p.RefreshRate)
}
