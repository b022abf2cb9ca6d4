package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunhollow/farmstead/internal/currency"
	"github.com/sunhollow/farmstead/internal/handler"
	"github.com/sunhollow/farmstead/internal/inventory"
	"github.com/sunhollow/farmstead/internal/item"
	"github.com/sunhollow/farmstead/internal/logger"
	"github.com/sunhollow/farmstead/internal/metrics"
	"github.com/sunhollow/farmstead/internal/shop"
	"github.com/sunhollow/farmstead/internal/world"
)

// Deps are the assembled core components the HTTP surface exposes.
type Deps struct {
	Registry *item.Registry
	Store    *inventory.Store
	Ledger   *currency.Ledger
	Engine   *shop.Engine
	Zone     *world.DropZone
	Catalogs map[string]*shop.Catalog
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, deps Deps) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleListItems(deps.Registry))
			r.Get("/resolve", handler.HandleResolveItem(deps.Registry))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(deps.Store))
			r.Post("/add", handler.HandleAddItem(deps.Store, deps.Registry))
			r.Post("/remove", handler.HandleRemoveItem(deps.Store))
			r.Post("/swap", handler.HandleSwapSlots(deps.Store))

			r.Route("/selection", func(r chi.Router) {
				r.Get("/", handler.HandleGetSelected(deps.Store))
				r.Post("/", handler.HandleSelectSlot(deps.Store))
				r.Post("/next", handler.HandleSelectNext(deps.Store))
				r.Post("/previous", handler.HandleSelectPrevious(deps.Store))
			})
		})

		r.Route("/gold", func(r chi.Router) {
			r.Get("/", handler.HandleGetGold(deps.Ledger))
			r.Post("/grant", handler.HandleGrantGold(deps.Ledger))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleShopStatus(deps.Engine))
			r.Post("/open", handler.HandleOpenShop(deps.Engine, deps.Catalogs))
			r.Post("/close", handler.HandleCloseShop(deps.Engine))
			r.Post("/buy", handler.HandleBuyItem(deps.Engine))
			r.Post("/sell", handler.HandleSellItem(deps.Engine))
			r.Get("/max-affordable", handler.HandleMaxAffordable(deps.Engine))
			r.Get("/max-sellable", handler.HandleMaxSellable(deps.Engine))
		})

		r.Route("/world", func(r chi.Router) {
			r.Get("/drops", handler.HandleListDrops(deps.Zone))
			r.Post("/drops/pickup", handler.HandlePickupDrop(deps.Zone, deps.Store))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
