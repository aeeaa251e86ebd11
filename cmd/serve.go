package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jd-develop/geodesie-de-bureau/internal/codes"
	"github.com/jd-develop/geodesie-de-bureau/internal/feature"
	"github.com/jd-develop/geodesie-de-bureau/internal/reconcile"
	"github.com/jd-develop/geodesie-de-bureau/internal/search"
	"github.com/jd-develop/geodesie-de-bureau/pkg/ign"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve benchmark lookups over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initLookup(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           buildRouter(env.Service.Lookup),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter returns the HTTP API over lookup.
func buildRouter(lookup lookupFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/reperes", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("matricule")
		if query == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "matricule is required"})
			return
		}

		chooser := reconcile.Refuse
		if raw := r.URL.Query().Get("cid"); raw != "" {
			cid, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid cid %q", raw)})
				return
			}
			chooser = reconcile.ByCID(uint32(cid))
		}

		b, err := lookup(r.Context(), query, chooser)
		if err != nil {
			status := statusFor(err)
			body := errorBody{Error: err.Error()}
			var cre *reconcile.ChoiceRequiredError
			if errors.As(err, &cre) {
				body.Candidates = cre.Candidates
			}
			if status >= http.StatusInternalServerError {
				zap.L().Error("lookup failed", zap.String("query", query), zap.Error(err))
			}
			writeJSON(w, status, body)
			return
		}
		writeJSON(w, http.StatusOK, b)
	})

	return r
}

type errorBody struct {
	Error      string             `json:"error"`
	Candidates []search.Candidate `json:"candidates,omitempty"`
}

// statusFor maps a lookup error onto an HTTP status.
func statusFor(err error) int {
	var (
		invalid    *search.InvalidQueryError
		noMatch    *reconcile.NoMatchError
		notLocated *search.NotLocatedError
		notFound   *feature.NotFoundError
		choice     *reconcile.ChoiceRequiredError
		ambiguous  *feature.AmbiguousError
		schema     *feature.SchemaError
		malformed  *search.MalformedEntryError
		unknown    *codes.UnknownCodeError
		status     *ign.StatusError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &noMatch), errors.As(err, &notLocated), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &choice), errors.As(err, &ambiguous):
		return http.StatusConflict
	case errors.As(err, &schema), errors.As(err, &malformed), errors.As(err, &unknown), errors.As(err, &status):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
