// Package server serves the desktop over SSH, one desktop per session.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/desktop"
	"github.com/charmbracelet/ssh"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "server",
})

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// Config holds SSH server settings.
type Config struct {
	Host    string
	Port    int
	KeyPath string
	// Open lists the apps opened in every new session.
	Open []string
	// Desktop is the configuration each session starts with.
	Desktop *config.Config
}

// HostKeyPath resolves the key path. Relative paths are taken from the
// user's home directory.
func (c Config) HostKeyPath() (string, error) {
	if filepath.IsAbs(c.KeyPath) {
		return c.KeyPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, c.KeyPath), nil
}

// Start runs the SSH server until ctx is cancelled.
func Start(ctx context.Context, cfg Config) error {
	keyPath, err := cfg.HostKeyPath()
	if err != nil {
		return err
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(cfg)),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("SSH server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// teaHandler creates a desktop for each SSH session.
func teaHandler(cfg Config) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "deskos needs an interactive terminal (ssh -t)")
			return nil, nil
		}

		m := desktop.New(desktop.Options{
			Config: cfg.Desktop,
			Width:  pty.Window.Width,
			Height: pty.Window.Height,
			Open:   cfg.Open,
		})
		logger.Info("session started",
			"session", m.ID(),
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"term", pty.Term,
		)

		go func() {
			<-sess.Context().Done()
			m.Stop()
			logger.Info("session ended", "session", m.ID())
		}()

		fps := config.NormalFPS
		if cfg.Desktop != nil {
			fps = cfg.Desktop.Behavior.FPS
		}
		return m, []tea.ProgramOption{tea.WithFPS(fps)}
	}
}
