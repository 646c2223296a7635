package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/you/storefront/pkg/cache"
	"github.com/you/storefront/pkg/service"
	"github.com/you/storefront/pkg/store"
)

// Handlers holds the HTTP surface's dependencies.
type Handlers struct {
	users    *service.UserService
	products *service.ProductService
	orders   *service.OrderService

	// store manager and cache manager back the health probe; either may be
	// nil in tests.
	storeManager *store.Manager
	cacheManager *cache.Manager
}

// NewHandlers creates the HTTP handler set.
func NewHandlers(
	users *service.UserService,
	products *service.ProductService,
	orders *service.OrderService,
	storeManager *store.Manager,
	cacheManager *cache.Manager,
) *Handlers {
	return &Handlers{
		users:        users,
		products:     products,
		orders:       orders,
		storeManager: storeManager,
		cacheManager: cacheManager,
	}
}

// Router registers all routes.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/users/{id}", h.getUser).Methods(http.MethodGet)
	r.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.updateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.deleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)

	r.HandleFunc("/orders/{id}", h.getOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)

	return r
}

// healthz reports backend reachability. The cache being down does not fail
// the probe; the database being down does.
func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"database": "ok", "cache": "ok"}

	if h.storeManager != nil {
		if err := h.storeManager.Ping(r.Context()); err != nil {
			body["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	if h.cacheManager != nil && !h.cacheManager.Ping(r.Context()) {
		body["cache"] = "unreachable"
	}
	writeJSON(w, status, body)
}

// Start binds the server and runs it in a goroutine; the caller owns
// shutdown.
func Start(addr string, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	return srv
}
