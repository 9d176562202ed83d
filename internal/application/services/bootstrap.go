package services

import (
	"strings"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

// BootstrapInfo is what the storefront needs to render the payment form.
// It never carries the access token.
type BootstrapInfo struct {
	Environment       domain.Environment
	ApplicationID     string
	LocationID        string
	Currency          string
	FlatShippingCents int64
}

type BootstrapService struct {
	resolver          *application.CredentialResolver
	currency          string
	flatShippingCents int64
}

func NewBootstrapService(resolver *application.CredentialResolver, cfg config.SquareConfig) *BootstrapService {
	return &BootstrapService{
		resolver:          resolver,
		currency:          strings.ToUpper(strings.TrimSpace(cfg.Currency)),
		flatShippingCents: cfg.FlatShippingCents,
	}
}

// Bootstrap resolves the environment the same way a checkout would.
func (s *BootstrapService) Bootstrap(requestedEnv string) (*BootstrapInfo, error) {
	creds, err := s.resolver.Resolve(requestedEnv)
	if err != nil {
		return nil, err
	}

	return &BootstrapInfo{
		Environment:       creds.Environment,
		ApplicationID:     creds.ApplicationID,
		LocationID:        creds.LocationID,
		Currency:          s.currency,
		FlatShippingCents: s.flatShippingCents,
	}, nil
}

// Health reports the non-secret switches.
type Health struct {
	SquareEnv              string
	AllowSquareEnvOverride bool
}

func (s *BootstrapService) Health() Health {
	env, allow := s.resolver.Describe()
	return Health{SquareEnv: env, AllowSquareEnvOverride: allow}
}
