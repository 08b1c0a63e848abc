// Package main implements deskos, a windowed desktop for the terminal.
// Windows can be dragged, resized, maximized and minimized with the mouse,
// locally or over SSH.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/deskos/internal/apps"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode    bool
	configFile   string
	colorProfile string
	themeName    string
	openApps     []string
)

func main() {
	apps.Version = version

	rootCmd := &cobra.Command{
		Use:   "deskos",
		Short: "A windowed desktop for the terminal",
		Long: `deskos - a windowed desktop for the terminal

Open apps in floating windows, then drag them by the title bar, resize them
from the bottom-right corner (or with the right mouse button) and use the
title bar buttons or the taskbar to maximize, minimize and close them.`,
		Example: `  # Run deskos
  deskos

  # Start with the clock and the monitor open
  deskos --open clock --open monitor

  # Use a color theme
  deskos --theme dracula

  # Serve deskos over SSH
  deskos ssh --port 2222

  # List the built-in apps
  deskos apps`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is the XDG config path)")
	rootCmd.PersistentFlags().StringSliceVar(&openApps, "open", []string{"about"}, "Apps to open at start")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight)")
	rootCmd.Flags().StringVar(&colorProfile, "color-profile", "", "Force a color profile: ascii, ansi, ansi256 or truecolor")

	var sshHost, sshKeyPath string
	var sshPort int

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run deskos as SSH server",
		Long: `Run deskos as an SSH server

Every SSH session gets its own desktop. The server generates a host key
automatically if none exists at the key path.`,
		Example: `  # Start SSH server on the configured port
  deskos ssh

  # Start on custom port
  deskos ssh --port 2222`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(cmd.Context(), sshFlags{
				host:    sshHost,
				port:    sshPort,
				keyPath: sshKeyPath,
				setHost: cmd.Flags().Changed("host"),
				setPort: cmd.Flags().Changed("port"),
				setKey:  cmd.Flags().Changed("key-path"),
			})
		},
	}

	sshCmd.Flags().IntVar(&sshPort, "port", 2222, "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (relative paths start at $HOME)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deskos configuration",
		Long:  `Manage the deskos configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the deskos configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running deskos picks up
the saved changes immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var force bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the deskos configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(force)
		},
	}
	configResetCmd.Flags().BoolVarP(&force, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "List the built-in apps",
		Long:  `Display the built-in apps, their launcher keys and window constraints`,
		RunE: func(cmd *cobra.Command, args []string) error {
			printAppsTable(os.Stdout)
			return nil
		},
	}

	rootCmd.AddCommand(sshCmd, configCmd, appsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}
