package application

import (
	"errors"
	"strings"

	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

var errEnvMissing = errors.New("square env is missing; set CHECKOUT_SQUARE__ENV=sandbox or CHECKOUT_SQUARE__ENV=production")

// ResolveEnvironment picks the environment for one call. The configured tag
// must always be valid. A requested tag is honoured only when overrides are
// allowed and it is itself valid; otherwise the configured tag stands.
func ResolveEnvironment(configured string, overrideAllowed bool, requested string) (domain.Environment, error) {
	if strings.TrimSpace(configured) == "" {
		return "", NewInvalidConfigurationError(errEnvMissing)
	}

	env, err := domain.ParseEnvironment(configured)
	if err != nil {
		return "", NewInvalidConfigurationError(err)
	}

	if !overrideAllowed || strings.TrimSpace(requested) == "" {
		return env, nil
	}

	if override, err := domain.ParseEnvironment(requested); err == nil {
		return override, nil
	}
	return env, nil
}

// CredentialResolver turns an environment tag into the matching credential
// bundle. It reads the configuration loaded at process start and never
// mutates it, so one resolver is shared by all requests.
type CredentialResolver struct {
	cfg *config.SquareConfig
}

func NewCredentialResolver(cfg *config.SquareConfig) *CredentialResolver {
	return &CredentialResolver{cfg: cfg}
}

// Resolve applies the override policy and returns complete credentials.
func (r *CredentialResolver) Resolve(requested string) (domain.Credentials, error) {
	env, err := ResolveEnvironment(r.cfg.Env, r.cfg.AllowEnvOverride, requested)
	if err != nil {
		return domain.Credentials{}, err
	}
	return r.ForEnvironment(env)
}

// ForEnvironment returns the credentials of an explicit environment, used
// when the environment is already known, e.g. for a recorded orphan.
func (r *CredentialResolver) ForEnvironment(env domain.Environment) (domain.Credentials, error) {
	var bundle config.SquareBundle
	switch env {
	case domain.EnvSandbox:
		bundle = r.cfg.Sandbox
	case domain.EnvProduction:
		bundle = r.cfg.Production
	default:
		return domain.Credentials{}, NewInvalidConfigurationError(domain.NewInvalidEnvironmentError(string(env)))
	}

	creds := domain.Credentials{
		Environment:   env,
		BaseURL:       strings.TrimRight(strings.TrimSpace(bundle.BaseURL), "/"),
		AccessToken:   strings.TrimSpace(bundle.AccessToken),
		ApplicationID: strings.TrimSpace(bundle.ApplicationID),
		LocationID:    strings.TrimSpace(bundle.LocationID),
	}

	var missing []string
	if creds.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if creds.ApplicationID == "" {
		missing = append(missing, "application_id")
	}
	if creds.LocationID == "" {
		missing = append(missing, "location_id")
	}
	if creds.BaseURL == "" {
		missing = append(missing, "base_url")
	}
	if len(missing) > 0 {
		return domain.Credentials{}, NewCredentialsNotConfiguredError(env, missing)
	}

	return creds, nil
}

// Check reports the configuration problem a checkout would hit right now,
// without any request override. Used for the startup log line.
func (r *CredentialResolver) Check() error {
	_, err := r.Resolve("")
	return err
}

// Describe exposes the non-secret switches for the health endpoint.
func (r *CredentialResolver) Describe() (configuredEnv string, overrideAllowed bool) {
	return strings.ToLower(strings.TrimSpace(r.cfg.Env)), r.cfg.AllowEnvOverride
}

