/*
Copyright 2024 SerialLink Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cmd provides the CLI entrypoint: a single, flagless command that
// launches the serial terminal multiplexer TUI.
package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kesler-labs/seriscope/internal/applog"
	"github.com/kesler-labs/seriscope/internal/logstore"
	"github.com/kesler-labs/seriscope/internal/serial"
	"github.com/kesler-labs/seriscope/internal/ui"
)

// Version is the application version (set at build time).
var Version = "dev"

const logsDir = "logs"

var rootCmd = &cobra.Command{
	Use:   "seriscope",
	Short: "A terminal multiplexer for serial ports",
	Long: `seriscope opens every port listed in config/ports.toml, shows their
combined output in a scrollable, searchable buffer, and lets you send a
typed line to any subset of them at once.

It takes no subcommands and no flags: run it, and it opens the TUI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run() error {
	created, err := serial.EnsureConfigFile(serial.DefaultConfigPath)
	if err != nil {
		return fmt.Errorf("bootstrap config: %w", err)
	}
	if created {
		applog.Info("wrote default config", "path", serial.DefaultConfigPath)
	}

	hub, hubEvents := serial.NewHub()
	defer hub.CloseAll()

	if err := hub.LoadConfig(serial.DefaultConfigPath, func(name serial.PortName, err error) {
		applog.Warn("port open failed at startup", "port", name, "error", err)
	}); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, logNotify := logstore.New(logsDir)
	defer store.Close()

	// The TUI now owns the terminal; stop writing diagnostics to stderr.
	applog.Mute(true)
	defer applog.Mute(false)

	model := ui.New(hub, hubEvents, store, logNotify, serial.DefaultConfigPath)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
