package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	core_ports "autofinder-client/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

func NewServer(port string, handlers *SearchHandlers, baseLogger core_ports.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: newRouter(handlers, baseLogger),
		},
		logger: baseLogger,
	}
}

func newRouter(handlers *SearchHandlers, baseLogger core_ports.LoggerPort) chi.Router {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger)) // Логирует каждый запрос (метод, путь, время выполнения)
	r.Use(middleware.Recoverer)         // Перехватывает паники и возвращает 500 ошибку, чтобы сервер не упал
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", handlers.HandleSearch)

		r.Route("/cars", func(r chi.Router) {
			r.Get("/state", handlers.HandleState)
			r.Post("/load", handlers.HandleLoad)
			r.Post("/load-more", handlers.HandleLoadMore)
			r.Post("/refresh", handlers.HandleRefresh)
			r.Get("/popular", handlers.HandlePopular)
			r.Get("/price-analysis", handlers.HandlePriceAnalysis)
			r.Get("/statistics", handlers.HandleStatistics)
			r.Get("/{carID}", handlers.HandleDetail)
			r.Get("/{carID}/similar", handlers.HandleSimilar)
		})

		r.Route("/recent-queries", func(r chi.Router) {
			r.Get("/", handlers.HandleRecentQueries)
			r.Delete("/", handlers.HandleClearRecentQueries)
			r.Delete("/{index}", handlers.HandleRemoveRecentQuery)
		})
	})

	return r
}

// Start запускает HTTP-сервер
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_ports.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
