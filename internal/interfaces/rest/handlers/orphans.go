package handlers

import (
	"net/http"

	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest"
	"github.com/oapi-codegen/runtime"
)

// HandleListOrphans godoc
//
//	@Summary		Unresolved orphaned orders
//	@Description	Lists orders that were created upstream but never paid, oldest first. Requires the operator bearer token; not served when none is configured.
//	@Tags			ops
//	@ID				listOrphans
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of rows"	minimum(1)
//	@Success		200		{object}	OrphanListResponse
//	@Failure		401		{object}	rest.FailureResponse
//	@Failure		500		{object}	rest.FailureResponse
//	@Router			/api/square/orphans [get]
func (h *Handlers) HandleListOrphans(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		rest.WriteValidationFailure(w, "Invalid limit", err.Error())
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}

	orphans, err := h.orphanService.ListUnresolved(r.Context(), n)
	if err != nil {
		h.logger.Error("failed to list orphaned orders", "error", err)
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, OrphanListResponse{
		OK:      true,
		Orphans: toOrphanResponses(orphans),
	})
}
