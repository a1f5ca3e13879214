package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meridian-advisory/dealmatch/internal/config"
	"github.com/meridian-advisory/dealmatch/internal/crm"
	"github.com/meridian-advisory/dealmatch/internal/match"
	"github.com/meridian-advisory/dealmatch/internal/model"
	"github.com/meridian-advisory/dealmatch/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matching API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		engine, err := initEngine()
		if err != nil {
			return err
		}

		env := &serverEnv{store: st, engine: engine, source: initSource()}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(env, cfg.Server),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// serverEnv bundles the collaborators the HTTP handlers need.
type serverEnv struct {
	store  store.Store
	engine *match.Engine
	source crm.Source
}

// buildRouter assembles the API routes and middleware. Split out from the
// command so tests can drive it with httptest.
func buildRouter(env *serverEnv, sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if sc.RatePerSecond > 0 {
		r.Use(throttle(rate.NewLimiter(rate.Limit(sc.RatePerSecond), sc.RateBurst)))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/match", env.handleMatch)

	r.Route("/api/strategies", func(r chi.Router) {
		r.Get("/", env.handleListStrategies)
		r.Post("/", env.handleCreateStrategy)
		r.Get("/{id}", env.handleGetStrategy)
		r.Put("/{id}", env.handleUpdateStrategy)
		r.Delete("/{id}", env.handleDeleteStrategy)
	})

	return r
}

// throttle applies a process-wide request rate limit.
func throttle(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				jsonError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (env *serverEnv) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req match.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var strategy model.Strategy
	if req.StrategyID != "" {
		s, err := env.store.GetStrategy(r.Context(), req.StrategyID)
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				jsonError(w, http.StatusNotFound, "strategy not found")
				return
			}
			zap.L().Error("match: load strategy", zap.Error(err))
			writeJSON(w, http.StatusOK, match.Failure("strategy store unavailable"))
			return
		}
		strategy = *s
	} else {
		strategy = req.Strategy()
	}

	ds, err := env.source.Load(r.Context())
	if err != nil {
		zap.L().Error("match: load crm records", zap.Error(err))
		writeJSON(w, http.StatusOK, match.Failure("crm records unavailable"))
		return
	}

	writeJSON(w, http.StatusOK, env.engine.Run(ds, &strategy))
}

func (env *serverEnv) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	list, err := env.store.ListStrategies(r.Context())
	if err != nil {
		zap.L().Error("strategies: list", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "list strategies")
		return
	}
	if list == nil {
		list = []model.Strategy{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (env *serverEnv) handleCreateStrategy(w http.ResponseWriter, r *http.Request) {
	var s model.Strategy
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.Name == "" {
		jsonError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := env.store.CreateStrategy(r.Context(), s)
	if err != nil {
		zap.L().Error("strategies: create", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "create strategy")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (env *serverEnv) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	s, err := env.store.GetStrategy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "strategy not found")
			return
		}
		zap.L().Error("strategies: get", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "get strategy")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (env *serverEnv) handleUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	var s model.Strategy
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.ID = chi.URLParam(r, "id")

	updated, err := env.store.UpdateStrategy(r.Context(), s)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "strategy not found")
			return
		}
		zap.L().Error("strategies: update", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "update strategy")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (env *serverEnv) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	if err := env.store.DeleteStrategy(r.Context(), chi.URLParam(r, "id")); err != nil {
		if eris.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "strategy not found")
			return
		}
		zap.L().Error("strategies: delete", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "delete strategy")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
