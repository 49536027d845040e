package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/config"
	"github.com/ibhanwork/hiresight/internal/db"
	"github.com/ibhanwork/hiresight/internal/github"
	"github.com/ibhanwork/hiresight/internal/interview"
	"github.com/ibhanwork/hiresight/internal/mailer"
	"github.com/ibhanwork/hiresight/internal/matching"
	"github.com/ibhanwork/hiresight/internal/server/middleware"
	"github.com/ibhanwork/hiresight/internal/server/ratelimit"
	"github.com/ibhanwork/hiresight/internal/session"
	"github.com/ibhanwork/hiresight/internal/similarity"

	analysispkg "github.com/ibhanwork/hiresight/internal/analysis"
)

// Server is the HireSight HTTP API. Optional capabilities (database index,
// GitHub token, Gemini, SMTP) are nil when not configured and checked
// explicitly by the handlers that need them.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger

	sessions  *session.Manager
	scorer    *similarity.Scorer
	analyzer  *analysispkg.Analyzer
	matcher   *matching.Matcher
	gh        *github.Client
	store     *db.DB               // nil without database_url
	interview *interview.Generator // nil without gemini_api_key
	mail      *mailer.Mailer       // nil without smtp_host

	rateLimiter *ratelimit.Limiter
	jwt         *JWTService // nil without api_key: auth disabled
}

// New wires a server from configuration. ctx is used for client setup only.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	sessions, err := session.NewManager(cfg.UploadDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		scorer:   similarity.New(similarity.Options{}),
		analyzer: analysispkg.New(cfg.Scoring, log),
		matcher:  matching.New(cfg.Scoring),
		gh:       github.NewClient(ctx, cfg.GitHubToken, log),
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect session index: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		s.store = store
	}

	if cfg.GeminiAPIKey != "" {
		gen, err := interview.NewGenerator(ctx, cfg.GeminiAPIKey, log)
		if err != nil {
			return nil, err
		}
		s.interview = gen
	}

	if cfg.SMTPHost != "" {
		m, err := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, log)
		if err != nil {
			return nil, err
		}
		s.mail = m
	}

	if cfg.APIKey != "" {
		s.jwt = NewJWTService(cfg.APIKey, 0)
	} else {
		log.Warn("api_key not configured, authentication disabled")
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // uploads plus GitHub/Gemini round trips
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// handler assembles routes and the middleware chain.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/token", s.handleToken)

	mux.HandleFunc("POST /api/rank", s.handleRank)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/github/analyze", s.handleGitHubAnalyze)
	mux.HandleFunc("POST /api/interview/generate", s.handleInterviewGenerate)
	mux.HandleFunc("POST /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("POST /api/invite", s.handleInvite)

	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("GET /api/sessions/{id}/leaderboard", s.handleGetSessionLeaderboard)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)

	var h http.Handler = mux
	if s.jwt != nil {
		h = middleware.RequireBearer(s.jwt, "/api/health", "/api/auth/token")(h)
	}
	return s.withRateLimit(s.withLogging(s.withCORS(h)))
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.interview != nil {
		_ = s.interview.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse maps an error to its HTTP status and writes the JSON body.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.jsonResponse(w, status, map[string]string{"error": publicMessage(err)})
}

// extractClientID identifies the client by IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
