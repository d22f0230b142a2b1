package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/freshmarket/marketplace/internal/product/usecase/command"
	"github.com/freshmarket/marketplace/internal/product/usecase/query"
	userhttp "github.com/freshmarket/marketplace/internal/user/delivery/http"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

// ProductHandler handles HTTP requests for the catalog
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	getHandler        *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	categoriesHandler *query.ListCategoriesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// Handlers groups the catalog usecase handlers for construction
type Handlers struct {
	Create     *command.CreateProductHandler
	Update     *command.UpdateProductHandler
	Delete     *command.DeleteProductHandler
	Get        *query.GetProductHandler
	List       *query.ListProductsHandler
	Categories *query.ListCategoriesHandler
}

// NewProductHandler creates a new product handler
func NewProductHandler(handlers Handlers) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_product_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_product_request_duration_seconds",
			Help:    "Duration of catalog endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ProductHandler{
		createHandler:     handlers.Create,
		updateHandler:     handlers.Update,
		deleteHandler:     handlers.Delete,
		getHandler:        handlers.Get,
		listHandler:       handlers.List,
		categoriesHandler: handlers.Categories,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
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

func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	skip, _ := strconv.Atoi(params.Get("skip"))
	limit, _ := strconv.Atoi(params.Get("limit"))

	q := query.ListProductsQuery{
		Category: params.Get("category"),
		Search:   params.Get("search"),
		Skip:     skip,
		Limit:    limit,
	}

	products, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: uint(id)})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// ListCategories handles GET /api/products/categories/list
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoriesHandler.Handle(r.Context(), query.ListCategoriesQuery{})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

type productInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	MinOrder    int     `json:"minOrder"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// CreateProduct handles POST /api/products (admin only)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Unit:        req.Unit,
		MinOrder:    req.MinOrder,
		Stock:       req.Stock,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id} (admin only, partial update)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Unit        *string  `json:"unit"`
		MinOrder    *int     `json:"minOrder"`
		Stock       *int     `json:"stock"`
		Image       *string  `json:"image"`
		Description *string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:          uint(id),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Unit:        req.Unit,
		MinOrder:    req.MinOrder,
		Stock:       req.Stock,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id} (admin only, soft delete)
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: uint(id)}); err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers catalog routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router, gate *userhttp.Gate) {
	// Public routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/categories/list", h.metricsMiddleware("/api/products/categories/list", h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", gate.RequireAdmin(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", gate.RequireAdmin(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", gate.RequireAdmin(h.DeleteProduct))).Methods("DELETE")
}
