package handler

import (
	"net/http"

	"github.com/egrafes/egrafes-backend/internal/repository"
	"github.com/egrafes/egrafes-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// AddressHandler serves the postal-code autocompletion lookups.
type AddressHandler struct {
	addressRepo *repository.AddressRepository
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(addressRepo *repository.AddressRepository) *AddressHandler {
	return &AddressHandler{addressRepo: addressRepo}
}

// ListPostalCodes godoc
// GET /api/v1/addresses/postal-codes
func (h *AddressHandler) ListPostalCodes(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"postal_codes": h.addressRepo.PostalCodes(),
	})
}

// Lookup godoc
// GET /api/v1/addresses/:postal_code
// Returns the streets and (first-found) city for a postal code. Unknown
// codes return empty results rather than an error.
func (h *AddressHandler) Lookup(c *gin.Context) {
	postalCode := c.Param("postal_code")
	city, _ := h.addressRepo.CityFor(postalCode)

	response.Success(c, http.StatusOK, gin.H{
		"postal_code": postalCode,
		"streets":     h.addressRepo.StreetsFor(postalCode),
		"city":        city,
	})
}
