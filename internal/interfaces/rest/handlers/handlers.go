package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/application/services"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest"
)

type CheckoutService interface {
	Submit(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutOutcome
}

type BootstrapService interface {
	Bootstrap(requestedEnv string) (*services.BootstrapInfo, error)
	Health() services.Health
}

type OrphanService interface {
	ListUnresolved(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error)
}

type Handlers struct {
	checkoutService  CheckoutService
	bootstrapService BootstrapService
	orphanService    OrphanService
	logger           *slog.Logger

	operatorToken string
}

func NewHandlers(
	checkoutService CheckoutService,
	bootstrapService BootstrapService,
	orphanService OrphanService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		checkoutService:  checkoutService,
		bootstrapService: bootstrapService,
		orphanService:    orphanService,
		logger:           logger,
	}
}

// WithOperatorToken sets the bearer token the orphan listing requires. With
// no token the listing is not registered.
func (h *Handlers) WithOperatorToken(token string) *Handlers {
	h.operatorToken = strings.TrimSpace(token)
	return h
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/square/checkout", h.HandleCheckout)
	mux.HandleFunc("OPTIONS /api/square/checkout", h.HandlePreflight)
	mux.HandleFunc("GET /api/square/bootstrap", h.HandleBootstrap)
	mux.HandleFunc("HEAD /api/square/bootstrap", h.HandleBootstrapProbe)
	mux.HandleFunc("GET /api/health", h.HandleHealth)

	if h.operatorToken != "" {
		mux.HandleFunc("GET /api/square/orphans", h.requireOperator(h.HandleListOrphans))
	}
}

// requireOperator admits requests carrying the operator bearer token.
func (h *Handlers) requireOperator(next http.HandlerFunc) http.HandlerFunc {
	want := []byte(h.operatorToken)

	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || subtle.ConstantTimeCompare([]byte(token), want) != 1 {
			h.logger.Warn("operator request rejected",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="operator"`)
			rest.WriteError(w, application.NewUnauthorizedError())
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
