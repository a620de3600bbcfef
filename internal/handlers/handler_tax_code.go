package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
	"github.com/ledgerline/ledgerline_app/internal/middleware"
)

// taxCodeHandler handles HTTP requests related to VAT rate reference data.
type taxCodeHandler struct {
	taxCodeService portssvc.TaxCodeSvcFacade
}

func newTaxCodeHandler(ts portssvc.TaxCodeSvcFacade) *taxCodeHandler {
	return &taxCodeHandler{
		taxCodeService: ts,
	}
}

// RegisterTaxCodeRoutes registers routes related to tax codes.
func RegisterTaxCodeRoutes(rg *gin.RouterGroup, taxCodeService portssvc.TaxCodeSvcFacade) {
	h := newTaxCodeHandler(taxCodeService)

	taxCodes := rg.Group("/tax-codes")
	{
		taxCodes.POST("", h.createTaxCode)
		taxCodes.GET("", h.listTaxCodes)
		taxCodes.GET("/:id", h.getTaxCode)
	}
}

// createTaxCode godoc
// @Summary Create a new tax code
// @Description Creates a named VAT rate, e.g. Standard 20%
// @Tags tax-codes
// @Accept  json
// @Produce  json
// @Param   taxCode body dto.CreateTaxCodeRequest true "Tax code details"
// @Success 201 {object} dto.TaxCodeResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate tax code name"
// @Failure 500 {object} map[string]string "Failed to create tax code"
// @Security BearerAuth
// @Router /tax-codes [post]
func (h *taxCodeHandler) createTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTaxCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create tax code", slog.String("name", req.Name))

	taxCode, err := h.taxCodeService.CreateTaxCode(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating tax code", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate tax code", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create tax code in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax code"})
		}
		return
	}

	logger.Info("Tax code created successfully", slog.String("tax_code_id", taxCode.TaxCodeID))
	c.JSON(http.StatusCreated, dto.ToTaxCodeResponse(taxCode))
}

// getTaxCode godoc
// @Summary Get a tax code by ID
// @Tags tax-codes
// @Produce  json
// @Param   id path string true "Tax code ID"
// @Success 200 {object} dto.TaxCodeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tax code not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax code"
// @Security BearerAuth
// @Router /tax-codes/{id} [get]
func (h *taxCodeHandler) getTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxCodeID := c.Param("id")

	taxCode, err := h.taxCodeService.GetTaxCodeByID(c.Request.Context(), taxCodeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Tax code not found", slog.String("tax_code_id", taxCodeID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax code not found"})
		} else {
			logger.Error("Failed to get tax code from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tax code"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxCodeResponse(taxCode))
}

// listTaxCodes godoc
// @Summary List all tax codes
// @Tags tax-codes
// @Produce  json
// @Success 200 {array} dto.TaxCodeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list tax codes"
// @Security BearerAuth
// @Router /tax-codes [get]
func (h *taxCodeHandler) listTaxCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	taxCodes, err := h.taxCodeService.ListTaxCodes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list tax codes from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax codes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTaxCodeResponse(taxCodes))
}
