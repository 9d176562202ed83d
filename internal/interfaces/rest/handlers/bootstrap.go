package handlers

import (
	"net/http"

	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest"
)

// HandleBootstrap godoc
//
//	@Summary		Storefront bootstrap
//	@Description	Returns the public values the storefront needs to render the card form for the resolved environment.
//	@Tags			checkout
//	@ID				getBootstrap
//	@Produce		json
//	@Param			env		query		string	false	"Requested environment, honoured only when overrides are allowed"
//	@Param			mode	query		string	false	"Alias of env"
//	@Success		200		{object}	BootstrapResponse
//	@Failure		400		{object}	rest.FailureResponse
//	@Failure		500		{object}	rest.FailureResponse
//	@Router			/api/square/bootstrap [get]
func (h *Handlers) HandleBootstrap(w http.ResponseWriter, r *http.Request) {
	info, err := h.bootstrapService.Bootstrap(requestedEnv(r))
	if err != nil {
		h.logger.Error("bootstrap rejected: square configuration", "error", err)
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, BootstrapResponse{
		Env:               info.Environment.String(),
		ApplicationID:     info.ApplicationID,
		LocationID:        info.LocationID,
		Currency:          info.Currency,
		FlatShippingCents: info.FlatShippingCents,
	})
}

// HandleBootstrapProbe godoc
//
//	@Summary	Bootstrap reachability probe
//	@Tags		checkout
//	@ID			headBootstrap
//	@Success	200
//	@Router		/api/square/bootstrap [head]
func (h *Handlers) HandleBootstrapProbe(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// HandleHealth godoc
//
//	@Summary		Health probe
//	@Description	Reports the configured environment and whether callers may override it. Never returns secrets.
//	@Tags			ops
//	@ID				getHealth
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/api/health [get]
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := h.bootstrapService.Health()
	rest.WriteJSON(w, http.StatusOK, HealthResponse{
		OK:                     true,
		SquareEnv:              health.SquareEnv,
		AllowSquareEnvOverride: health.AllowSquareEnvOverride,
	})
}
