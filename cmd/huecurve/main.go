// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command huecurve edits, inspects and applies hue curve corrections
// stored in state files.
package main

import (
	"os"

	"cogentcore.org/huecurve/base/logx"
	"cogentcore.org/huecurve/config"
	"github.com/spf13/cobra"
)

// Config is the configuration shared by all commands.
type Config struct {
	// ConfigFile is the settings file.
	ConfigFile string

	// LogLevel overrides the log level of the settings.
	LogLevel string

	// Settings are the loaded settings.
	Settings *config.Settings
}

func main() {
	if err := newRoot(&Config{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRoot(c *Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "huecurve",
		Short:        "Hue curve color correction",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logx.Init(cmd.ErrOrStderr())
			s, err := config.Open(c.ConfigFile)
			if err != nil {
				return err
			}
			c.Settings = s
			return logx.SetLevel(c.LogLevel)
		},
	}
	root.PersistentFlags().StringVar(&c.ConfigFile, "config", config.DefaultPath, "settings file")
	root.PersistentFlags().StringVar(&c.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	root.AddCommand(initCmd(c), applyCmd(c), packCmd(c), pathCmd(c), previewCmd(c), watchCmd(c), serveCmd(c))
	return root
}
