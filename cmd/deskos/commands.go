package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/deskos/internal/apps"
	"github.com/Gaurav-Gosain/deskos/internal/config"
)

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if err := config.Save(config.DefaultConfig(), configPath); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	if _, err := config.Load(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: the saved config is not valid: %v\n", err)
	}
	return nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(force bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(config.DefaultConfig(), configPath); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	return nil
}

func sizeRange(minW, minH, maxW, maxH int) string {
	limit := func(v int) string {
		if v == 0 {
			return "∞"
		}
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%dx%d – %sx%s", minW, minH, limit(maxW), limit(maxH))
}

// appRows returns one table row per catalogue app.
func appRows() [][]string {
	var rows [][]string
	for _, app := range apps.Catalogue() {
		d := app.Descriptor()
		var flags []string
		if d.FixedSize {
			flags = append(flags, "fixed size")
		}
		if d.KeepAspectRatio {
			flags = append(flags, "keeps aspect ratio")
		}
		rows = append(rows, []string{
			app.Key,
			app.Icon + " " + app.Name,
			sizeRange(d.MinWidth, d.MinHeight, d.MaxWidth, d.MaxHeight),
			strings.Join(flags, ", "),
		})
	}
	return rows
}

// printAppsTable prints the app catalogue in a table
func printAppsTable(w io.Writer) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Key", "App", "Size", "Notes").
		Rows(appRows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w)
	lipgloss.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("deskos apps"))
	fmt.Fprintln(w)
	lipgloss.Fprintln(w, t.Render())
	fmt.Fprintln(w)

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Press the key on the desktop to open the app. Sizes are in terminal cells.")
	lipgloss.Fprintln(w, note)
}
