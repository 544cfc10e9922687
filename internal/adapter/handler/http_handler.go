package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rl1809/pos-checkout/internal/core/service"
	"github.com/rl1809/pos-checkout/internal/port"
)

type HTTPHandler struct {
	posService *service.POSService
	receipts   port.ReceiptRepository
}

type AddToCartHTTPRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type CheckoutHTTPRequest struct {
	RequestID string `json:"request_id"`
}

type HTTPResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Checkout *CheckoutView `json:"checkout,omitempty"`
}

// NewHTTPHandler serves the POS API. receipts may be nil when archiving is off.
func NewHTTPHandler(posService *service.POSService, receipts port.ReceiptRepository) *HTTPHandler {
	return &HTTPHandler{posService: posService, receipts: receipts}
}

func (h *HTTPHandler) Routes(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/cart", h.GetCart)
		r.Post("/cart/lines", h.AddToCart)
		r.Post("/checkout", h.Checkout)
		r.Get("/receipts/{id}", h.GetReceipt)
	})
	return r
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.posService.Products(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines, balance := h.posService.Cart()
	writeJSON(w, http.StatusOK, toCartView(lines, balance))
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.Product == "" {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "missing required fields",
		})
		return
	}

	if err := h.posService.AddToCart(r.Context(), req.Product, req.Quantity); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HTTPResponse{
		Success: true,
		Message: "added to cart",
	})
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.RequestID == "" {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "missing required fields",
		})
		return
	}

	result, err := h.posService.Checkout(r.Context(), req.RequestID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HTTPResponse{
		Success:  true,
		Message:  "checkout completed",
		Checkout: toCheckoutView(result),
	})
}

func (h *HTTPHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	if h.receipts == nil {
		writeJSON(w, http.StatusNotImplemented, HTTPResponse{Message: "receipt archive disabled"})
		return
	}

	result, err := h.receipts.GetReceipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, HTTPResponse{Message: "receipt not found"})
		return
	}

	writeJSON(w, http.StatusOK, HTTPResponse{
		Success:  true,
		Message:  "ok",
		Checkout: toCheckoutView(*result),
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, err error) {
	status, _, message := describeError(err)
	writeJSON(w, status, HTTPResponse{
		Success: false,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
