package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikolayk812/checkout-demo/internal/cart"
	"github.com/nikolayk812/checkout-demo/internal/checkout"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/nikolayk812/checkout-demo/internal/session"
)

const sessionCookie = "session_id"

const requestTimeout = 5 * time.Second

type Handler struct {
	sessions *session.Store
	catalog  port.CatalogRepository
	checkout *checkout.Service
	logger   *slog.Logger
}

func NewHandler(sessions *session.Store, catalog port.CatalogRepository, svc *checkout.Service, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		catalog:  catalog,
		checkout: svc,
		logger:   logger,
	}
}

// session resolves the request's session from the cookie, minting a new
// one (and setting the cookie) when absent or unknown, and guarantees
// the cart exists. Every cart-aware endpoint goes through here.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	effectiveID, sess := h.sessions.GetOrCreate(id)
	if effectiveID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    effectiveID,
			Path:     "/",
			HttpOnly: true,
		})
	}

	cart.Ensure(sess)
	return sess
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.session(w, r)

	ctx, cancel := timeoutCtx(r)
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		h.serveError(w, "list products", err)
		return
	}

	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) ViewProduct(w http.ResponseWriter, r *http.Request) {
	h.session(w, r)

	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing product name")
		return
	}

	ctx, cancel := timeoutCtx(r)
	defer cancel()

	product, err := h.catalog.GetByName(ctx, name)
	if err != nil {
		h.serveError(w, "view product", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	count, err := cart.Add(sess, body.ProductID)
	if err != nil {
		// a rejected identifier is not a transport failure: report it
		// in-band as the unsuccessful variant of the same response
		writeJSON(w, http.StatusOK, addToCartResponse{Success: false, CartItems: count})
		return
	}

	writeJSON(w, http.StatusOK, addToCartResponse{Success: true, CartItems: count})
}

func (h *Handler) PreviewCheckout(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	ctx, cancel := timeoutCtx(r)
	defer cancel()

	summary, err := h.checkout.Preview(ctx, sess)
	if err != nil {
		h.serveError(w, "preview checkout", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

func (h *Handler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := timeoutCtx(r)
	defer cancel()

	orderID, err := h.checkout.Complete(ctx, sess, body.Email)
	if errors.Is(err, domain.ErrValidation) {
		// re-render signal: the preview plus the validation message
		summary, previewErr := h.checkout.Preview(ctx, sess)
		if previewErr != nil {
			h.serveError(w, "complete checkout", previewErr)
			return
		}
		writeJSON(w, http.StatusBadRequest, completeFailureDTO{
			Error:   "email is required",
			Preview: toSummaryDTO(summary),
		})
		return
	}
	if err != nil {
		h.serveError(w, "complete checkout", err)
		return
	}

	w.Header().Set("Location", "/api/checkout/complete")
	writeJSON(w, http.StatusSeeOther, map[string]int64{"order_id": orderID})
}

func (h *Handler) ShowCompletion(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	ctx, cancel := timeoutCtx(r)
	defer cancel()

	order, pending, err := h.checkout.ShowCompletion(ctx, sess)
	if err != nil {
		h.serveError(w, "show completion", err)
		return
	}
	if !pending {
		http.Redirect(w, r, "/api/products", http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// serveError maps the error taxonomy onto status codes; anything
// unclassified stays a generic 500 so internals do not leak.
func (h *Handler) serveError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func timeoutCtx(r *http.Request) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}
