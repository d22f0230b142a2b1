package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/freshmarket/marketplace/internal/user/domain"
	"github.com/freshmarket/marketplace/internal/user/usecase/command"
	"github.com/freshmarket/marketplace/internal/user/usecase/query"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

// UserHandler handles HTTP requests for authentication and the user directory
type UserHandler struct {
	registerHandler   *command.RegisterUserHandler
	loginHandler      *command.LoginUserHandler
	deactivateHandler *command.DeactivateUserHandler

	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler

	repo           domain.UserRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeUsers    prometheus.Gauge
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_user_requests_total",
			Help: "Total number of requests to user endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_user_request_duration_seconds",
			Help:    "Duration of user endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "marketplace_active_users",
			Help: "Number of active users in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeUsers)

	return &UserHandler{
		registerHandler:   command.NewRegisterUserHandler(repo),
		loginHandler:      command.NewLoginUserHandler(repo),
		deactivateHandler: command.NewDeactivateUserHandler(repo),
		getUserHandler:    query.NewGetUserHandler(repo),
		listHandler:       query.NewListUsersHandler(repo),
		repo:              repo,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		activeUsers:       activeUsers,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// tokenResponse is the payload returned by register and login
type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Company  string `json:"company"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		Company:  req.Company,
	}

	resp, err := h.registerHandler.Handle(cmd)
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	h.updateActiveUsersMetric()
	respondJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: resp.Token,
		TokenType:   "bearer",
		User:        resp.User,
	})
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		AccessToken: resp.Token,
		TokenType:   "bearer",
		User:        resp.User,
	})
}

// Me handles GET /api/auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(query.ListUsersQuery{})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	h.updateActiveUsersMetric()
	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/users/{id} (admin only)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: uint(id)})
	if err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// DeactivateUser handles DELETE /api/users/{id} (admin only, soft delete)
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	cmd := command.DeactivateUserCommand{
		UserID:      uint(id),
		RequestedBy: admin.ID,
	}
	if err := h.deactivateHandler.Handle(cmd); err != nil {
		respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	h.updateActiveUsersMetric()
	w.WriteHeader(http.StatusNoContent)
}

// updateActiveUsersMetric refreshes the active users gauge
func (h *UserHandler) updateActiveUsersMetric() {
	count, err := h.repo.CountActive()
	if err == nil {
		h.activeUsers.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RegisterRoutes registers auth and user directory routes
func (h *UserHandler) RegisterRoutes(router *mux.Router, gate *Gate) {
	// Public routes
	router.HandleFunc("/api/auth/register", h.metricsMiddleware("/api/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/api/auth/login", h.metricsMiddleware("/api/auth/login", h.Login)).Methods("POST")

	// Authenticated routes
	router.HandleFunc("/api/auth/me", h.metricsMiddleware("/api/auth/me", gate.Authenticate(h.Me))).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", gate.RequireAdmin(h.ListUsers))).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", gate.RequireAdmin(h.GetUser))).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", gate.RequireAdmin(h.DeactivateUser))).Methods("DELETE")
}
