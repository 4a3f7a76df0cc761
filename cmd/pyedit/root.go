package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xycoord/python-editor-next/internal/app"
	"github.com/xycoord/python-editor-next/internal/config"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// runApp starts the editor. Tests replace it to avoid a terminal.
var runApp = func(cfg *config.Config, filePath string) error {
	editorApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	return editorApp.Run()
}

// NewRootCommand builds the pyedit command.
func NewRootCommand() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   config.AppName + " [file.py]",
		Short: "A terminal Python editor with drag and drop for code blocks",
		Long: `pyedit edits a Python file in the terminal. Every statement gets a handle
in the gutter; drag it with the mouse to move the statement, with its body,
anywhere in the file. Esc cancels a drag, Ctrl+Z undoes a drop.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loadErr := config.LoadConfig(flags.ConfigFilePath, &flags)
			if cfg == nil {
				return fmt.Errorf("loading configuration: %w", loadErr)
			}
			if err := logger.Init(cfg.Logger); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Close()
			if loadErr != nil {
				// Problems in the config file are not fatal; defaults fill the gaps.
				logger.Warnf("config: %v", loadErr)
			}

			filePath := ""
			if len(args) > 0 {
				filePath = args[0]
			}
			logger.Infof("Starting %s %s", config.AppName, Version)
			if filePath != "" {
				logger.DebugTagf("config", "File path specified: %s", filePath)
			} else {
				logger.DebugTagf("config", "No file specified, starting empty.")
			}

			if err := runApp(cfg, filePath); err != nil {
				logger.Errorf("Application exited with error: %v", err)
				return err
			}
			logger.Infof("%s finished.", config.AppName)
			return nil
		},
	}
	flags.Register(cmd.Flags())
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	return cmd
}

// execute runs the root command with args and returns the exit code.
func execute(args []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
