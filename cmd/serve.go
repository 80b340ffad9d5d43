package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skyreach/ssot-cli/internal/export"
	"github.com/skyreach/ssot-cli/internal/model"
	"github.com/skyreach/ssot-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored snapshots over a read-only HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(st),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the read-only snapshot API.
func newRouter(st store.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/snapshots", func(w http.ResponseWriter, req *http.Request) {
		metas, err := st.ListSnapshots(req.Context(), 50)
		if err != nil {
			zap.L().Error("list snapshots failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
			return
		}
		if metas == nil {
			metas = []model.SnapshotMeta{}
		}
		writeJSON(w, http.StatusOK, metas)
	})

	r.Get("/snapshots/{id}", func(w http.ResponseWriter, req *http.Request) {
		snap, err := st.GetSnapshot(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			zap.L().Error("get snapshot failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get failed"})
			return
		}
		if snap == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, snap)
	})

	r.Get("/snapshots/{id}/quality", func(w http.ResponseWriter, req *http.Request) {
		snap, err := st.GetSnapshot(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			zap.L().Error("get snapshot failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get failed"})
			return
		}
		if snap == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(export.FormatReport(snap)))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
