package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
	"github.com/tair/inventory-ledger/internal/ledger/usecase/command"
	"github.com/tair/inventory-ledger/internal/ledger/usecase/query"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// LedgerHandler handles HTTP requests for products, movements and alerts
type LedgerHandler struct {
	// Command handlers
	createHandler   *command.CreateProductHandler
	updateHandler   *command.UpdateProductHandler
	deleteHandler   *command.DeleteProductHandler
	movementHandler *command.RecordMovementHandler

	// Query handlers
	getHandler    *query.GetProductHandler
	listHandler   *query.ListProductsHandler
	alertsHandler *query.ListAlertsHandler
	txnsHandler   *query.ListTransactionsHandler

	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	movementCounter *prometheus.CounterVec
	lowStockGauge   prometheus.Gauge
}

// NewLedgerHandler creates a new ledger handler. idem and publisher may be
// nil when Redis or Kafka are unavailable.
func NewLedgerHandler(
	products domain.ProductRepository,
	transactions domain.TransactionRepository,
	idem command.IdempotencyStore,
	publisher command.MovementEventPublisher,
) *LedgerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_service_requests_total",
			Help: "Total number of requests to the ledger service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_service_request_duration_seconds",
			Help:    "Duration of ledger service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	movementCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_service_movements_total",
			Help: "Total number of stock movements by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	lowStockGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_service_low_stock_products",
			Help: "Number of products below their reorder point at last read",
		},
	)

	prometheus.MustRegister(requestCounter, requestLatency, movementCounter, lowStockGauge)

	return &LedgerHandler{
		createHandler:   command.NewCreateProductHandler(products),
		updateHandler:   command.NewUpdateProductHandler(products),
		deleteHandler:   command.NewDeleteProductHandler(products),
		movementHandler: command.NewRecordMovementHandler(products, idem, publisher),
		getHandler:      query.NewGetProductHandler(products),
		listHandler:     query.NewListProductsHandler(products),
		alertsHandler:   query.NewListAlertsHandler(products),
		txnsHandler:     query.NewListTransactionsHandler(transactions),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		movementCounter: movementCounter,
		lowStockGauge:   lowStockGauge,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *LedgerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// errorStatus maps the typed error taxonomy onto HTTP status codes in one
// place. Unrecognized errors (usecase validation) map to 400.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, authz.ErrMissingCredential), errors.Is(err, authz.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// CreateProduct handles POST /api/products
func (h *LedgerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Category     string `json:"category"`
		Stock        int    `json:"stock"`
		ReorderPoint int    `json:"reorder_point"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		Principal:    principalFrom(r),
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		ReorderPoint: req.ReorderPoint,
	})
	if err != nil {
		respondError(w, errorStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *LedgerHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{
		Principal: principalFrom(r),
		ProductID: id,
	})
	if err != nil {
		respondError(w, errorStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListProducts handles GET /api/products
func (h *LedgerHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.listHandler.Handle(query.ListProductsQuery{
		Principal: principalFrom(r),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, errorStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *LedgerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Category     *string `json:"category"`
		ReorderPoint *int    `json:"reorder_point"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		Principal:    principalFrom(r),
		ProductID:    id,
		Name:         req.Name,
		Category:     req.Category,
		ReorderPoint: req.ReorderPoint,
	})
	if err != nil {
		respondError(w, errorStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *LedgerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{
		Principal: principalFrom(r),
		ProductID: id,
	}); err != nil {
		respondError(w, errorStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// ListAlerts handles GET /api/products/alerts
func (h *LedgerHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alertsHandler.Handle(query.ListAlertsQuery{
		Principal: principalFrom(r),
	})
	if err != nil {
		respondError(w, errorStatus(err), err.Error())
		return
	}

	h.lowStockGauge.Set(float64(len(alerts)))

	respondJSON(w, http.StatusOK, Response{Success: true, Data: alerts})
}

// RecordMovement handles POST /api/transactions
func (h *LedgerHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uint   `json:"product_id"`
		Type      string `json:"type"`
		Quantity  int    `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.movementHandler.Handle(r.Context(), command.RecordMovementCommand{
		Principal: principalFrom(r),
		ProductID: req.ProductID,
		Type:      domain.MovementType(req.Type),
		Quantity:  req.Quantity,
		RequestID: r.Header.Get("X-Request-Id"),
	})
	if err != nil {
		h.movementCounter.WithLabelValues(movementLabel(req.Type), "rejected").Inc()
		respondError(w, errorStatus(err), err.Error())
		return
	}

	h.movementCounter.WithLabelValues(movementLabel(req.Type), "accepted").Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Transaction recorded",
		Data:    result,
	})
}

// movementLabel keeps the metric label set bounded. Anything other than
// the known movement types collapses to a single value so arbitrary client
// input cannot grow the series cardinality.
func movementLabel(movementType string) string {
	switch domain.MovementType(movementType) {
	case domain.MovementIn, domain.MovementOut:
		return movementType
	default:
		return "invalid"
	}
}

// ListTransactions handles GET /api/transactions
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	productID, _ := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)

	transactions, err := h.txnsHandler.Handle(query.ListTransactionsQuery{
		Principal: principalFrom(r),
		ProductID: uint(productID),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list transactions")
		respondError(w, errorStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: transactions})
}

// RegisterRoutes registers all ledger routes. The alerts route must come
// before the {id} route so mux does not swallow it.
func (h *LedgerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products/alerts", h.metricsMiddleware("/api/products/alerts", AuthMiddleware(h.ListAlerts))).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AuthMiddleware(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AuthMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AuthMiddleware(h.GetProduct))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AuthMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AuthMiddleware(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/transactions", h.metricsMiddleware("/api/transactions", AuthMiddleware(h.RecordMovement))).Methods("POST")
	router.HandleFunc("/api/transactions", h.metricsMiddleware("/api/transactions", AuthMiddleware(h.ListTransactions))).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *LedgerHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Ledger service is healthy",
		})
	}).Methods("GET")
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
