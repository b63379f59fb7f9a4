package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/weftui/weft/pkg/surface/wire"
	"github.com/weftui/weft/pkg/vdom"
	"github.com/weftui/weft/pkg/weft"
)

func serveCmd() *cobra.Command {
	var (
		addr  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			metrics := weft.NewMetrics()

			upgrader := websocket.Upgrader{
				ReadBufferSize:  4096,
				WriteBufferSize: 4096,
			}

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.Recoverer)

			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				fmt.Fprint(w, indexHTML)
			})

			r.Handle("/metrics", promhttp.Handler())

			r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
				conn, err := upgrader.Upgrade(w, req, nil)
				if err != nil {
					logger.Error("websocket upgrade failed", "error", err)
					return
				}
				defer conn.Close()

				surf := wire.New()
				opts := []weft.Option{
					weft.WithLogger(logger),
					weft.WithMetrics(metrics),
				}
				if debug {
					opts = append(opts, weft.WithDebug())
				}

				driver, err := weft.Mount(vdom.Comp(App), surf, surf.Root(), opts...)
				if err != nil {
					logger.Error("mount failed", "error", err)
					return
				}
				defer driver.Unmount()

				sess := wire.NewSession(conn, surf, driver, logger)
				logger.Info("session started", "session", sess.ID(), "remote", req.RemoteAddr)
				if err := sess.Serve(req.Context()); err != nil {
					logger.Warn("session ended", "session", sess.ID(), "error", err)
					return
				}
				logger.Info("session closed", "session", sess.ID())
			})

			logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, r)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":3000", "Listen address")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging and hook protocol checks")

	return cmd
}
