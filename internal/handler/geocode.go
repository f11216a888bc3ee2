// Package handler contains the HTTP handlers for the oficiogen API.
//
// This file implements the coordinate-to-address lookup endpoint.
package handler

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/geocode"
)

// coordParam accepts any plausible decimal coordinate; precision is the
// form's concern, not the lookup's.
var coordParam = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// =============================================================================
// Handler Configuration
// =============================================================================

// GeocodeHandler handles reverse-geocoding HTTP requests.
type GeocodeHandler struct {
	client *geocode.Client
	logger *slog.Logger
}

// NewGeocodeHandler creates a new GeocodeHandler.
func NewGeocodeHandler(client *geocode.Client, logger *slog.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		client: client,
		logger: logger,
	}
}

// RegisterRoutes registers the geocoding route with the provided mux.
//
// Routes:
// - GET /api/geocode?lat=&lon= -> Reverse
func (h *GeocodeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/geocode", h.Reverse)
}

// reverseResponse is the lookup payload. An empty address with found=false
// means the operator should type the address manually.
type reverseResponse struct {
	Address string `json:"address"`
	Found   bool   `json:"found"`
}

// =============================================================================
// GET /api/geocode - Reverse Lookup
// =============================================================================

// Reverse resolves the given coordinates to a street address.
func (h *GeocodeHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")

	if !coordParam.MatchString(lat) || !coordParam.MatchString(lon) {
		ErrorResponse(w, r, h.logger, domain.Invalid("geocode.reverse", "Coordenadas inválidas."))
		return
	}

	address, err := h.client.Reverse(r.Context(), lat, lon)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, "geocode.reverse", "Falha na busca de endereço."))
		return
	}

	writeJSON(w, http.StatusOK, reverseResponse{
		Address: address,
		Found:   address != "",
	})
}
