// Package config loads, validates and watches the deskos configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/window"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Frame rates for the presentation loop.
const (
	NormalFPS = 60
	MinFPS    = 10
	MaxFPS    = 240
)

// Config is the user configuration.
type Config struct {
	Appearance Appearance `toml:"appearance"`
	Behavior   Behavior   `toml:"behavior"`
	Server     Server     `toml:"server"`
}

// Appearance holds colors and desktop chrome. When Theme names a bubbletint
// theme its palette replaces the colors below.
type Appearance struct {
	Theme               string `toml:"theme"`
	DesktopColor        string `toml:"desktop_color"`
	ActiveBorderColor   string `toml:"active_border_color"`
	InactiveBorderColor string `toml:"inactive_border_color"`
	TitleColor          string `toml:"title_color"`
	TaskbarColor        string `toml:"taskbar_color"`
	TaskbarHeight       int    `toml:"taskbar_height"`
}

// Behavior holds window transition and layout knobs.
type Behavior struct {
	Animations          bool `toml:"animations"`
	AnimationMS         int  `toml:"animation_ms"`
	DragAnimationMS     int  `toml:"drag_animation_ms"`
	UnmaximizeThreshold int  `toml:"unmaximize_threshold"`
	VisibleMargin       int  `toml:"visible_margin"`
	CascadeStep         int  `toml:"cascade_step"`
	FPS                 int  `toml:"fps"`
}

// Server configures the SSH server.
type Server struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	HostKeyPath string `toml:"host_key_path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Appearance: Appearance{
			DesktopColor:        "#1e1e2e",
			ActiveBorderColor:   "#89b4fa",
			InactiveBorderColor: "#585b70",
			TitleColor:          "#cdd6f4",
			TaskbarColor:        "#313244",
			TaskbarHeight:       1,
		},
		Behavior: Behavior{
			Animations:          true,
			AnimationMS:         300,
			DragAnimationMS:     50,
			UnmaximizeThreshold: 2,
			VisibleMargin:       4,
			CascadeStep:         2,
			FPS:                 NormalFPS,
		},
		Server: Server{
			Host:        "localhost",
			Port:        2222,
			HostKeyPath: ".ssh/deskos_ed25519",
		},
	}
}

// Validate checks ranges and colors. Every problem found is reported.
func (c *Config) Validate() error {
	var problems []string
	colors := []struct{ name, value string }{
		{"desktop_color", c.Appearance.DesktopColor},
		{"active_border_color", c.Appearance.ActiveBorderColor},
		{"inactive_border_color", c.Appearance.InactiveBorderColor},
		{"title_color", c.Appearance.TitleColor},
		{"taskbar_color", c.Appearance.TaskbarColor},
	}
	for _, col := range colors {
		if !validColor(col.value) {
			problems = append(problems, fmt.Sprintf("%s: %q is not a #rrggbb color", col.name, col.value))
		}
	}

	b := c.Behavior
	if c.Appearance.TaskbarHeight < 1 {
		problems = append(problems, "taskbar_height must be at least 1")
	}
	if b.AnimationMS < 1 || b.DragAnimationMS < 1 {
		problems = append(problems, "animation durations must be at least 1ms")
	}
	if b.DragAnimationMS > b.AnimationMS {
		problems = append(problems, "drag_animation_ms must not exceed animation_ms")
	}
	if b.UnmaximizeThreshold < 1 {
		problems = append(problems, "unmaximize_threshold must be at least 1")
	}
	if b.VisibleMargin < 1 {
		problems = append(problems, "visible_margin must be at least 1")
	}
	if b.CascadeStep < 1 {
		problems = append(problems, "cascade_step must be at least 1")
	}
	if b.FPS < MinFPS || b.FPS > MaxFPS {
		problems = append(problems, fmt.Sprintf("fps must be between %d and %d", MinFPS, MaxFPS))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "port must be between 1 and 65535")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func validColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// AnimationDuration returns the maximize/minimize transition length. With
// animations disabled transitions still arm for one millisecond.
func (c *Config) AnimationDuration() time.Duration {
	if !c.Behavior.Animations {
		return time.Millisecond
	}
	return time.Duration(c.Behavior.AnimationMS) * time.Millisecond
}

// DragAnimationDuration returns the transition length used when a drag pulls a
// window out of maximized.
func (c *Config) DragAnimationDuration() time.Duration {
	if !c.Behavior.Animations {
		return time.Millisecond
	}
	return time.Duration(c.Behavior.DragAnimationMS) * time.Millisecond
}

// FrameInterval returns the tick interval for the configured FPS.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.Behavior.FPS, 1))
}

// WindowOptions converts the behavior section to window options.
func (c *Config) WindowOptions() window.Options {
	return window.Options{
		Duration:            c.AnimationDuration(),
		DragDuration:        c.DragAnimationDuration(),
		UnmaximizeThreshold: c.Behavior.UnmaximizeThreshold,
	}
}

// RegistryOptions converts the behavior section to registry options.
func (c *Config) RegistryOptions() registry.Options {
	return registry.Options{
		Window:      c.WindowOptions(),
		CascadeStep: c.Behavior.CascadeStep,
	}
}

// GetConfigPath returns the user config file path, creating its directory.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile("deskos/config.toml")
}

// GetLogPath returns the log file path used while the TUI owns the terminal.
func GetLogPath() (string, error) {
	return xdg.StateFile("deskos/deskos.log")
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUserConfig loads the user config, writing the defaults on first run.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(DefaultConfig(), path); err != nil {
			return nil, err
		}
	}
	return Load(path)
}

// Marshal encodes cfg as TOML with a descriptive header.
func Marshal(cfg *Config, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# deskos configuration file\n")
	sb.WriteString("# Colors are #rrggbb; durations are in milliseconds.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
