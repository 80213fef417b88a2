// controllers/service.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agenda-backend/services"
	"agenda-backend/utils"
)

// ServiceInput defines the expected JSON structure for creating or
// updating a catalog service. Price and duration limits are enforced by the
// catalog service, which owns those invariants.
type ServiceInput struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"durationMin"`
}

// MigrateDurationsInput defines the JSON structure for the one-time
// schema migration.
type MigrateDurationsInput struct {
	DurationMin int `json:"durationMin" binding:"required,gt=0"`
}

type ServiceController struct {
	Catalog *services.CatalogService
}

// GetServices returns the full catalog with derived record IDs.
func (sc *ServiceController) GetServices(c *gin.Context) {
	catalog, err := sc.Catalog.Load(c.Request.Context())
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// CreateService adds a new service to the catalog.
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.TranslateBindingError(err))
		return
	}

	catalog, err := sc.Catalog.Add(c.Request.Context(), input.Name, input.Price, input.DurationMin)
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, catalog)
}

// UpdateService replaces the fields of an existing service in place.
func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.TranslateBindingError(err))
		return
	}

	catalog, err := sc.Catalog.Update(c.Request.Context(), id, input.Name, input.Price, input.DurationMin)
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// DeleteService removes a service from the catalog.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	catalog, err := sc.Catalog.Remove(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// MigrateDurations converts a default-duration catalog to the
// explicit-duration schema.
func (sc *ServiceController) MigrateDurations(c *gin.Context) {
	var input MigrateDurationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.TranslateBindingError(err))
		return
	}

	catalog, err := sc.Catalog.MigrateDurations(c.Request.Context(), input.DurationMin)
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}
