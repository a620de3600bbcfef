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

// vatHandler handles HTTP requests related to VAT returns and obligations.
type vatHandler struct {
	vatService portssvc.VATSvcFacade
}

func newVATHandler(vs portssvc.VATSvcFacade) *vatHandler {
	return &vatHandler{
		vatService: vs,
	}
}

// RegisterVATRoutes registers routes related to VAT.
func RegisterVATRoutes(rg *gin.RouterGroup, vatService portssvc.VATSvcFacade) {
	h := newVATHandler(vatService)

	vat := rg.Group("/vat")
	{
		vat.GET("/return", h.calculateReturn)
		vat.GET("/obligations", h.listObligations)
		vat.POST("/returns", h.submitReturn)
	}
}

// calculateReturn godoc
// @Summary Calculate a 9-box VAT return
// @Description Derives the nine statutory boxes from invoices and bills dated within
// @Description the period. Pure: calculating changes nothing and can be repeated.
// @Tags vat
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD), inclusive"
// @Param   to query string true "Period end (YYYY-MM-DD), inclusive"
// @Success 200 {object} domain.VATReturn
// @Failure 400 {object} map[string]string "Missing or invalid date parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to calculate VAT return"
// @Security BearerAuth
// @Router /vat/return [get]
func (h *vatHandler) calculateReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, err := parseDateParam(c, "from")
	if err != nil || from == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required 'from' date missing or invalid, expected YYYY-MM-DD"})
		return
	}
	to, err := parseDateParam(c, "to")
	if err != nil || to == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required 'to' date missing or invalid, expected YYYY-MM-DD"})
		return
	}

	ret, err := h.vatService.CalculateReturn(c.Request.Context(), userID, *from, *to)
	if err != nil {
		logger.Error("Failed to calculate VAT return", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate VAT return"})
		return
	}

	c.JSON(http.StatusOK, ret)
}

// listObligations godoc
// @Summary List VAT filing obligations
// @Description Fetches the trader's filing windows from the tax authority. Gateway
// @Description failures are passed through verbatim; nothing is retried locally.
// @Tags vat
// @Produce  json
// @Success 200 {array} domain.VATObligation
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Tax authority unreachable"
// @Security BearerAuth
// @Router /vat/obligations [get]
func (h *vatHandler) listObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligations, err := h.vatService.ListObligations(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to fetch VAT obligations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, obligations)
}

// submitReturn godoc
// @Summary Submit a VAT return
// @Description Recalculates the nine boxes for the obligation period and submits them
// @Description as finalised. Submission is attempted exactly once: a duplicated VAT
// @Description filing is worse than a reported failure, so nothing is retried.
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   submission body dto.SubmitVATReturnRequest true "Obligation period to file"
// @Success 201 {object} dto.VATSubmissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Submission failed at the tax authority"
// @Security BearerAuth
// @Router /vat/returns [post]
func (h *vatHandler) submitReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitVATReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitVATReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("period_key", req.PeriodKey))
	logger.Info("Received request to submit VAT return")

	ret, receipt, err := h.vatService.SubmitReturn(c.Request.Context(), userID, req.PeriodKey, req.From, req.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error submitting VAT return", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("VAT return submission failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	logger.Info("VAT return submitted successfully", slog.String("form_bundle_number", receipt.FormBundleNumber))
	c.JSON(http.StatusCreated, dto.VATSubmissionResponse{Return: *ret, Receipt: *receipt})
}
