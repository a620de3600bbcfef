package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
	"github.com/ledgerline/ledgerline_app/internal/middleware"
)

// reconciliationHandler handles HTTP requests for bank statement
// reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// RegisterReconciliationRoutes registers routes related to bank transactions
// and reconciliation.
func RegisterReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	txns := rg.Group("/bank-transactions")
	{
		txns.POST("/import", h.importTransactions)
		txns.GET("", h.listTransactions)
		txns.GET("/:id/suggestions", h.suggestMatches)
		txns.POST("/:id/match", h.commitMatch)
	}
}

// importTransactions godoc
// @Summary Import bank transactions
// @Description Persists a batch of well-formed statement records. Statement parsing
// @Description happens upstream; this endpoint only accepts structured records.
// @Tags bank-transactions
// @Accept  json
// @Produce  json
// @Param   transactions body dto.ImportBankTransactionsRequest true "Statement records"
// @Success 201 {array} dto.BankTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or empty batch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to import transactions"
// @Security BearerAuth
// @Router /bank-transactions/import [post]
func (h *reconciliationHandler) importTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportBankTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportTransactions", slog.String("error", err.Error()))
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
	logger.Info("Received request to import bank transactions", slog.Int("count", len(req.Transactions)))

	txns, err := h.reconciliationService.ImportTransactions(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error importing transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to import transactions in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import transactions"})
		}
		return
	}

	logger.Info("Bank transactions imported successfully", slog.Int("count", len(txns)))
	c.JSON(http.StatusCreated, dto.ToListBankTransactionResponse(txns))
}

// listTransactions godoc
// @Summary List bank transactions
// @Tags bank-transactions
// @Produce  json
// @Param   reconciled query bool false "Filter by reconciliation status"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.BankTransactionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /bank-transactions [get]
func (h *reconciliationHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var reconciled *bool
	if v := c.Query("reconciled"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reconciled parameter"})
			return
		}
		reconciled = &parsed
	}

	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.reconciliationService.ListTransactions(c.Request.Context(), userID, reconciled, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankTransactionResponse(txns))
}

// suggestMatches godoc
// @Summary Suggest reconciliation matches
// @Description Proposes open invoices (money in) or bills (money out) for a
// @Description transaction by amount and reference heuristics. Advisory only:
// @Description nothing is mutated and suggestions carry no ranking weight.
// @Tags bank-transactions
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Success 200 {array} domain.MatchSuggestion
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to suggest matches"
// @Security BearerAuth
// @Router /bank-transactions/{id}/suggestions [get]
func (h *reconciliationHandler) suggestMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestions, err := h.reconciliationService.SuggestMatches(c.Request.Context(), userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for suggestions", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to suggest matches in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest matches"})
		}
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// commitMatch godoc
// @Summary Commit a reconciliation match
// @Description Links the transaction to one invoice or bill and marks it reconciled.
// @Description First writer wins: a second commit for the same transaction fails and
// @Description leaves the original link untouched.
// @Tags bank-transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Param   match body dto.CommitMatchRequest true "Match target"
// @Success 200 {object} dto.BankTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction or target not found"
// @Failure 409 {object} map[string]string "Transaction already reconciled"
// @Failure 500 {object} map[string]string "Failed to commit match"
// @Security BearerAuth
// @Router /bank-transactions/{id}/match [post]
func (h *reconciliationHandler) commitMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.CommitMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CommitMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("transaction_id", transactionID),
		slog.String("target_type", string(req.TargetType)),
		slog.String("target_id", req.TargetID),
	)
	logger.Info("Received request to commit reconciliation match")

	txn, err := h.reconciliationService.CommitMatch(c.Request.Context(), userID, transactionID, req.TargetType, req.TargetID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyReconciled):
			logger.Warn("Transaction already reconciled")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Transaction or match target not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error committing match", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to commit match in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit match"})
		}
		return
	}

	logger.Info("Reconciliation match committed successfully")
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}
