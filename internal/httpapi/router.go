package httpapi

import (
	"encoding/json"
	"net/http"
)

func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler)

	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{name}", h.ViewProduct)
	mux.HandleFunc("POST /api/cart", h.AddToCart)
	mux.HandleFunc("GET /api/checkout", h.PreviewCheckout)
	mux.HandleFunc("POST /api/checkout", h.CompleteCheckout)
	mux.HandleFunc("GET /api/checkout/complete", h.ShowCompletion)

	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "checkout-service",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
