package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to financial reports.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

// parseDateParam parses an optional YYYY-MM-DD query parameter. Returns nil
// when the parameter is absent.
func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Per-account debit/credit totals, optionally restricted to a date range.
// @Description An unbalanced ledger is reported, not rejected: the balanced flag and
// @Description discrepancy fields flag it for a human to investigate.
// @Tags reports
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD), inclusive"
// @Param   to query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid date parameter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, err := parseDateParam(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), userID, from, to)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// profitAndLoss godoc
// @Summary Profit and loss report
// @Description Income and expense flow for the requested period. Accounts with no
// @Description net activity in the period are omitted.
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD), inclusive"
// @Param   to query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} domain.PAndLReport
// @Failure 400 {object} map[string]string "Missing or invalid date parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
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

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), userID, *from, *to)
	if err != nil {
		logger.Error("Failed to generate profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Description Cumulative asset, liability and equity balances as of the given date.
// @Description Every posting up to and including that date counts.
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Report date (YYYY-MM-DD), inclusive"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Missing or invalid asOf parameter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseDateParam(c, "asOf")
	if err != nil || asOf == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required 'asOf' date missing or invalid, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), userID, *asOf)
	if err != nil {
		logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
