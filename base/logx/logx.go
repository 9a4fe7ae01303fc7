// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the user-level logging configuration
// shared by the hue curve packages, on top of [log/slog].
package logx

import (
	"io"
	"log/slog"
	"strings"
)

// UserLevel is the verbosity [slog.Level] that the user has selected
// for what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through the settings file or a command line flag. The default
// depends on build tags; see level_default.go and friends.
var UserLevel = &slog.LevelVar{}

func init() {
	UserLevel.Set(defaultUserLevel)
}

// SetLevel sets [UserLevel] from its textual form
// ("debug", "info", "warn", or "error", case insensitive).
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return err
	}
	UserLevel.Set(lv)
	return nil
}

// Init installs a text handler writing to w as the default
// [slog] logger, filtered by [UserLevel].
func Init(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel})
	slog.SetDefault(slog.New(h))
}
