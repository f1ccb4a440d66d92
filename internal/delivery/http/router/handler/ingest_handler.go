package handler

import (
	"log/slog"
	"net/http"
	"time"

	"lens/internal/delivery/http/response"
	"lens/internal/domain/entity"
	domainerrors "lens/internal/domain/errors"
	"lens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// IngestHandlerParams holds dependencies for IngestHandler, injected by Fx.
type IngestHandlerParams struct {
	fx.In

	IngestUC usecase.IngestUsecase
	Logger   *slog.Logger
}

// IngestHandler accepts bulk-pipeline writes for products, transactions and
// customer profiles.
type IngestHandler struct {
	ingestUC usecase.IngestUsecase
	logger   *slog.Logger
}

// NewIngestHandler is the constructor for IngestHandler
func NewIngestHandler(params IngestHandlerParams) *IngestHandler {
	return &IngestHandler{
		ingestUC: params.IngestUC,
		logger:   params.Logger,
	}
}

// IngestProductRequest represents the request body for ingesting a product
type IngestProductRequest struct {
	ProductID    string                   `json:"product_id"`
	Name         string                   `json:"name" validate:"required"`
	Description  string                   `json:"description"`
	Category     string                   `json:"category" validate:"required"`
	Subcategory  string                   `json:"subcategory"`
	Brand        string                   `json:"brand"`
	Price        float64                  `json:"price" validate:"min=0"`
	Cost         float64                  `json:"cost" validate:"min=0"`
	StockLevel   int                      `json:"stock_level" validate:"min=0"`
	ReorderPoint int                      `json:"reorder_point" validate:"min=0"`
	SupplierID   string                   `json:"supplier_id"`
	Attributes   entity.ProductAttributes `json:"attributes"`
	Images       []string                 `json:"images"`
	Tags         []string                 `json:"tags"`
	Ratings      entity.ProductRatings    `json:"ratings"`
	IsActive     bool                     `json:"is_active"`
}

// IngestTransactionRequest represents the request body for ingesting a
// transaction. UserID and ProductID are logical references; they are stored
// as given.
type IngestTransactionRequest struct {
	TransactionID     string          `json:"transaction_id"`
	UserID            string          `json:"user_id" validate:"required"`
	ProductID         string          `json:"product_id" validate:"required"`
	ProductName       string          `json:"product_name" validate:"required"`
	Category          string          `json:"category"`
	Subcategory       string          `json:"subcategory"`
	Quantity          int             `json:"quantity" validate:"min=1"`
	UnitPrice         float64         `json:"unit_price" validate:"min=0"`
	TotalAmount       float64         `json:"total_amount" validate:"min=0"`
	DiscountAmount    float64         `json:"discount_amount" validate:"min=0"`
	PaymentMethod     string          `json:"payment_method"`
	TransactionStatus string          `json:"transaction_status"`
	Timestamp         *time.Time      `json:"timestamp"`
	SessionID         string          `json:"session_id"`
	DeviceType        string          `json:"device_type"`
	Location          entity.Location `json:"location"`
	MarketingSource   string          `json:"marketing_source"`
}

// IngestProfileRequest represents the request body for upserting a customer
// profile
type IngestProfileRequest struct {
	UserID      string                     `json:"user_id" validate:"required"`
	Demographic entity.Demographic         `json:"demographic"`
	Behavior    entity.Behavior            `json:"purchase_behavior"`
	Engagement  entity.Engagement          `json:"engagement_metrics"`
	Lifecycle   entity.Lifecycle           `json:"lifecycle"`
	Preferences entity.CustomerPreferences `json:"preferences"`
}

// IngestProduct handles POST /ingest/products
func (h *IngestHandler) IngestProduct(c echo.Context) error {
	var req IngestProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.ingestUC.IngestProduct(c.Request().Context(), usecase.IngestProductInput{
		ProductID:    req.ProductID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Brand:        req.Brand,
		Price:        req.Price,
		Cost:         req.Cost,
		StockLevel:   req.StockLevel,
		ReorderPoint: req.ReorderPoint,
		SupplierID:   req.SupplierID,
		Attributes:   req.Attributes,
		Images:       req.Images,
		Tags:         req.Tags,
		Ratings:      req.Ratings,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product ingested successfully")
}

// IngestTransaction handles POST /ingest/transactions
func (h *IngestHandler) IngestTransaction(c echo.Context) error {
	var req IngestTransactionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.IngestTransactionInput{
		TransactionID:     req.TransactionID,
		UserID:            req.UserID,
		ProductID:         req.ProductID,
		ProductName:       req.ProductName,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		TotalAmount:       req.TotalAmount,
		DiscountAmount:    req.DiscountAmount,
		PaymentMethod:     req.PaymentMethod,
		TransactionStatus: req.TransactionStatus,
		SessionID:         req.SessionID,
		DeviceType:        req.DeviceType,
		Location:          req.Location,
		MarketingSource:   req.MarketingSource,
	}
	if req.Timestamp != nil {
		input.Timestamp = *req.Timestamp
	}

	txn, err := h.ingestUC.IngestTransaction(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, txn, "Transaction ingested successfully")
}

// UpsertProfile handles POST /ingest/profiles
func (h *IngestHandler) UpsertProfile(c echo.Context) error {
	var req IngestProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	profile, err := h.ingestUC.UpsertProfile(c.Request().Context(), usecase.IngestProfileInput{
		UserID:      req.UserID,
		Demographic: req.Demographic,
		Behavior:    req.Behavior,
		Engagement:  req.Engagement,
		Lifecycle:   req.Lifecycle,
		Preferences: req.Preferences,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile stored successfully")
}

func (h *IngestHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
