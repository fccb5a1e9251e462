package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/loader"
	"github.com/lumipallolabs/corpusmap/internal/server"
)

var (
	serveAddr  string
	serveWatch bool
	serveTitle string
)

// serveCmd runs the HTTP dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the treemap dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := slog.Default()
		ctrl := core.NewController(chartOptions(), core.Events{})
		srv := server.NewServer(ctrl, log, server.Config{
			Addr:    serveAddr,
			DataDir: dir,
			TaxPath: taxPath,
			Title:   serveTitle,
		})

		if err := srv.Reload(); err != nil {
			return err
		}

		httpSrv := &http.Server{
			Addr:    serveAddr,
			Handler: srv,
		}

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			log.Info("listening", "addr", serveAddr, "data", dir)
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})

		if serveWatch {
			g.Go(func() error {
				changes, err := loader.Watch(ctx, dir)
				if err != nil {
					return err
				}
				for range changes {
					if err := srv.Reload(); err != nil {
						log.Warn("reload failed", "err", err)
					}
				}
				return nil
			})
		}

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8473", "listen address")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload when the data directory changes")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "dashboard page title")
}
