package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"lens/internal/delivery/http/response"
	domainerrors "lens/internal/domain/errors"
	"lens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler serves read queries for the dashboards
type AnalyticsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: params.AnalyticsUC,
		logger:      params.Logger,
	}
}

// GetProduct handles GET /analytics/products/:id
func (h *AnalyticsHandler) GetProduct(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return response.BadRequest(c, "INVALID_ID", "Product ID is required")
	}

	product, err := h.analyticsUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// SearchProducts handles GET /analytics/products?q=...&limit=...
func (h *AnalyticsHandler) SearchProducts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "INVALID_QUERY", "Query parameter 'q' is required")
	}

	limit := parseLimit(c.QueryParam("limit"))

	products, err := h.analyticsUC.SearchProducts(c.Request().Context(), query, limit)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProfile handles GET /analytics/profiles/:userID
func (h *AnalyticsHandler) GetProfile(c echo.Context) error {
	userID := c.Param("userID")
	if userID == "" {
		return response.BadRequest(c, "INVALID_ID", "User ID is required")
	}

	profile, err := h.analyticsUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile retrieved successfully")
}

// GetTransaction handles GET /analytics/transactions/:id
func (h *AnalyticsHandler) GetTransaction(c echo.Context) error {
	transactionID := c.Param("id")
	if transactionID == "" {
		return response.BadRequest(c, "INVALID_ID", "Transaction ID is required")
	}

	txn, err := h.analyticsUC.GetTransaction(c.Request().Context(), transactionID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, txn, "Transaction retrieved successfully")
}

// ListUserTransactions handles GET /analytics/users/:userID/transactions
func (h *AnalyticsHandler) ListUserTransactions(c echo.Context) error {
	userID := c.Param("userID")
	if userID == "" {
		return response.BadRequest(c, "INVALID_ID", "User ID is required")
	}

	limit := parseLimit(c.QueryParam("limit"))

	txns, err := h.analyticsUC.ListUserTransactions(c.Request().Context(), userID, limit)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, txns, "Transactions retrieved successfully")
}

// parseLimit turns an optional query parameter into a limit. Zero lets the
// repository apply its default.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}

	return limit
}

func (h *AnalyticsHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
