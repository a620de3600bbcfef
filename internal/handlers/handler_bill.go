package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
	"github.com/ledgerline/ledgerline_app/internal/middleware"
)

// billHandler handles HTTP requests related to purchase bills.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(bs portssvc.BillSvcFacade) *billHandler {
	return &billHandler{
		billService: bs,
	}
}

// RegisterBillRoutes registers routes related to bills.
func RegisterBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:id", h.getBill)
		bills.PATCH("/:id/status", h.updateBillStatus)
	}
}

// createBill godoc
// @Summary Record a new bill
// @Description Computes line amounts and totals server-side. Client-supplied totals
// @Description that disagree beyond a cent are rejected, never silently corrected.
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input, unknown tax code, or totals mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate bill reference"
// @Failure 500 {object} map[string]string "Failed to create bill"
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to create bill", slog.String("reference", req.Reference), slog.Int("line_count", len(req.Lines)))

	bill, lines, err := h.billService.CreateBill(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTotalsMismatch):
			logger.Warn("Bill totals mismatch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating bill", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Bill references unknown tax code", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate bill reference", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create bill in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		}
		return
	}

	logger.Info("Bill created successfully", slog.String("bill_id", bill.BillID))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill, lines))
}

// getBill godoc
// @Summary Get a bill by ID
// @Description Retrieves a bill and its lines
// @Tags bills
// @Produce  json
// @Param   id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 500 {object} map[string]string "Failed to retrieve bill"
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, lines, err := h.billService.GetBillByID(c.Request.Context(), userID, billID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bill not found", slog.String("bill_id", billID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		} else {
			logger.Error("Failed to get bill from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bill"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill, lines))
}

// listBills godoc
// @Summary List bills
// @Tags bills
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.BillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bills"
// @Security BearerAuth
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list bills from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bills"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBillResponse(bills))
}

// updateBillStatus godoc
// @Summary Update bill status
// @Description Advances the bill through its lifecycle, e.g. DRAFT to RECEIVED
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   id path string true "Bill ID"
// @Param   status body dto.UpdateDocumentStatusRequest true "New status"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid status transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 500 {object} map[string]string "Failed to update bill"
// @Security BearerAuth
// @Router /bills/{id}/status [patch]
func (h *billHandler) updateBillStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("id")

	var req dto.UpdateDocumentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBillStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("bill_id", billID), slog.String("new_status", req.Status))

	bill, err := h.billService.UpdateBillStatus(c.Request.Context(), userID, billID, domain.BillStatus(req.Status))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bill not found for status update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid bill status transition", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update bill status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bill"})
		}
		return
	}

	logger.Info("Bill status updated successfully")
	c.JSON(http.StatusOK, dto.ToBillResponse(bill, nil))
}
