// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/editor"
	"cogentcore.org/huecurve/live"
	"cogentcore.org/huecurve/state"
	"cogentcore.org/huecurve/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Serve streams the parameter block of the state file to WebSocket
// clients at addr, sending it again whenever the file changes.
func Serve(ctx context.Context, c *Config, stateFile, addr string, f *Frame) error {
	ef, err := loadEffect(stateFile)
	if err != nil {
		return err
	}
	loop := editor.NewLoop()
	w, err := watch.New(stateFile, loop, func(d *state.Document) {
		errors.Log(d.Apply(ef))
	})
	if err != nil {
		return err
	}
	defer w.Close()

	hub := live.NewHub(ef, c.Settings.Layout, f.Time(c))
	mux := http.NewServeMux()
	mux.Handle("/params", hub)
	srv := &http.Server{Addr: addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(ctx)
	})
	g.Go(func() error {
		slog.Info("serving parameters", "addr", addr, "path", "/params", "layout", c.Settings.Layout)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.Close()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveCmd(c *Config) *cobra.Command {
	f := &Frame{}
	addr := ""
	cmd := &cobra.Command{
		Use:   "serve <state>",
		Short: "Stream the parameter block to WebSocket clients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return Serve(ctx, c, args[0], addr, f)
		},
	}
	f.flags(cmd)
	cmd.Flags().StringVar(&addr, "addr", "localhost:8642", "listen address")
	return cmd
}
