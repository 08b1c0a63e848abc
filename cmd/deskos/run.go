package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/desktop"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/server"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/charmbracelet/colorprofile"
)

// setupLogging points every package logger at w.
func setupLogging(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	if debugMode {
		l.SetLevel(log.DebugLevel)
	}
	registry.SetLogger(l.WithPrefix("registry"))
	desktop.SetLogger(l.WithPrefix("desktop"))
	config.SetLogger(l.WithPrefix("config"))
	server.SetLogger(l.WithPrefix("server"))
	return l
}

// loadConfig loads --config or the user config. Failures fall back to the
// defaults so a broken file never keeps deskos from starting.
func loadConfig(logger *log.Logger) (*config.Config, string) {
	path := configFile
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadUserConfig()
		path, _ = config.GetConfigPath()
	}
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	logger.Debug("configuration", "path", path)

	applyThemeFlag(cfg)
	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		logger.Warn("failed to load theme, using configured colors", "theme", cfg.Appearance.Theme, "err", err)
	}
	return cfg, path
}

// applyThemeFlag lets --theme win over the config file.
func applyThemeFlag(cfg *config.Config) {
	if themeName != "" {
		cfg.Appearance.Theme = themeName
	}
}

func parseColorProfile(name string) (colorprofile.Profile, error) {
	switch strings.ToLower(name) {
	case "ascii":
		return colorprofile.ASCII, nil
	case "ansi":
		return colorprofile.ANSI, nil
	case "ansi256":
		return colorprofile.ANSI256, nil
	case "truecolor":
		return colorprofile.TrueColor, nil
	default:
		return colorprofile.Unknown, fmt.Errorf("unknown color profile %q", name)
	}
}

// filterMouseMotion drops pointer motion unless a drag is in progress.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*desktop.Model)
	if !ok || m.Dragging() {
		return msg
	}
	return nil
}

func runLocal(ctx context.Context) error {
	// The TUI owns the terminal, so logs go to a file.
	logPath, err := config.GetLogPath()
	if err != nil {
		return fmt.Errorf("could not determine log path: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer logFile.Close()
	logger := setupLogging(logFile)

	cfg, path := loadConfig(logger)

	opts := []tea.ProgramOption{
		tea.WithFPS(cfg.Behavior.FPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	}
	if colorProfile != "" {
		profile, err := parseColorProfile(colorProfile)
		if err != nil {
			return err
		}
		opts = append(opts, tea.WithColorProfile(profile))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan *config.Config, 1)
	go func() {
		err := config.Watch(ctx, path, func(next *config.Config, err error) {
			if err != nil {
				return
			}
			applyThemeFlag(next)
			select {
			case updates <- next:
			default:
				// Drop the stale update and keep the newest.
				select {
				case <-updates:
				default:
				}
				updates <- next
			}
		})
		if err != nil {
			logger.Warn("config live reload disabled", "err", err)
		}
	}()

	m := desktop.New(desktop.Options{
		Config:        cfg,
		Open:          openApps,
		ConfigUpdates: updates,
	})
	p := tea.NewProgram(m, opts...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			p.Send(tea.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	finalModel, err := p.Run()
	if final, ok := finalModel.(*desktop.Model); ok {
		final.Close()
	}
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

type sshFlags struct {
	host, keyPath            string
	port                     int
	setHost, setPort, setKey bool
}

func runSSHServer(ctx context.Context, flags sshFlags) error {
	logger := setupLogging(os.Stderr)
	cfg, _ := loadConfig(logger)

	srvCfg := server.Config{
		Host:    cfg.Server.Host,
		Port:    cfg.Server.Port,
		KeyPath: cfg.Server.HostKeyPath,
		Open:    openApps,
		Desktop: cfg,
	}
	if flags.setHost {
		srvCfg.Host = flags.host
	}
	if flags.setPort {
		srvCfg.Port = flags.port
	}
	if flags.setKey {
		srvCfg.KeyPath = flags.keyPath
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, srvCfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
