package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/freshmarket/marketplace/internal/order/domain"
	"github.com/freshmarket/marketplace/internal/order/usecase/command"
	"github.com/freshmarket/marketplace/internal/order/usecase/query"
	userhttp "github.com/freshmarket/marketplace/internal/user/delivery/http"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	createHandler       *command.CreateOrderHandler
	updateStatusHandler *command.UpdateStatusHandler

	getHandler     *query.GetOrderHandler
	listHandler    *query.ListOrdersHandler
	listAllHandler *query.ListAllOrdersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
}

// Handlers groups the order usecase handlers for construction
type Handlers struct {
	Create       *command.CreateOrderHandler
	UpdateStatus *command.UpdateStatusHandler
	Get          *query.GetOrderHandler
	List         *query.ListOrdersHandler
	ListAll      *query.ListAllOrdersHandler
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(handlers Handlers) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_order_requests_total",
			Help: "Total number of requests to order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_order_request_duration_seconds",
			Help:    "Duration of order endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersPlaced)

	return &OrderHandler{
		createHandler:       handlers.Create,
		updateStatusHandler: handlers.UpdateStatus,
		getHandler:          handlers.Get,
		listHandler:         handlers.List,
		listAllHandler:      handlers.ListAll,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		ordersPlaced:        ordersPlaced,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type orderItemInput struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Items           []orderItemInput       `json:"items"`
		ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
		ContactInfo     domain.ContactInfo     `json:"contactInfo"`
		DeliveryFee     float64                `json:"deliveryFee"`
		Notes           string                 `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]command.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, command.OrderItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Price:     item.Price,
			Image:     item.Image,
		})
	}

	order, err := h.createHandler.Handle(r.Context(), command.CreateOrderCommand{
		UserID:          user.ID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		ContactInfo:     req.ContactInfo,
		DeliveryFee:     req.DeliveryFee,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	h.ordersPlaced.Inc()
	respondJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /api/orders (own orders)
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	orders, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{
		UserID: user.ID,
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// ListAllOrders handles GET /api/orders/all (admin only)
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.listAllHandler.Handle(r.Context(), query.ListAllOrdersQuery{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{id} (owner or admin)
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{
		OrderID:          uint(id),
		RequesterID:      user.ID,
		RequesterIsAdmin: user.IsAdmin(),
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{id}/status (admin only)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req struct {
		Status       string     `json:"status"`
		DeliveryDate *time.Time `json:"deliveryDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.updateStatusHandler.Handle(r.Context(), command.UpdateStatusCommand{
		OrderID:      uint(id),
		Status:       req.Status,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers order routes. The literal /api/orders/all route
// must be registered before /api/orders/{id}.
func (h *OrderHandler) RegisterRoutes(router *mux.Router, gate *userhttp.Gate) {
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", gate.Authenticate(h.CreateOrder))).Methods("POST")
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", gate.Authenticate(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/all", h.metricsMiddleware("/api/orders/all", gate.RequireAdmin(h.ListAllOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", gate.Authenticate(h.GetOrder))).Methods("GET")
	router.HandleFunc("/api/orders/{id}/status", h.metricsMiddleware("/api/orders/{id}/status", gate.RequireAdmin(h.UpdateStatus))).Methods("PATCH")
}
