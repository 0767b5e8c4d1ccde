package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tastybites-web/internal/backend"
	"tastybites-web/internal/cart"
	"tastybites-web/internal/domain"
	"tastybites-web/internal/session"
	"tastybites-web/internal/workflow"
)

const genericErrorMessage = "Something went wrong. Please try again."

// Gateway is the slice of the backend client the handlers proxy directly.
type Gateway interface {
	Login(ctx context.Context, creds domain.Credentials) (backend.AuthResult, error)
	Signup(ctx context.Context, s domain.Signup) (backend.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, reset domain.PasswordReset) (string, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Menu(ctx context.Context) ([]domain.Product, error)
	Contact(ctx context.Context, msg domain.ContactMessage) (string, error)
	User(ctx context.Context, cookie string) (domain.User, error)
	UpdateUser(ctx context.Context, cookie string, update domain.UserUpdate) (string, error)
	OrderHistory(ctx context.Context, cookie string) ([]domain.HistoryEntry, error)
	SubmitRating(ctx context.Context, cookie string, rating domain.Rating) (string, error)
}

type Handler struct {
	Sessions     *session.Manager
	Carts        *cart.Registry
	Orders       *workflow.OrderWorkflow
	Reservations *workflow.ReservationWorkflow
	Pickups      *workflow.PickupWorkflow
	Gateway      Gateway
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/session", h.getSession).Methods("GET")
	r.HandleFunc("/api/login", h.login).Methods("POST")
	r.HandleFunc("/api/signup", h.signup).Methods("POST")
	r.HandleFunc("/api/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/forgot-password", h.forgotPassword).Methods("POST")
	r.HandleFunc("/api/reset-password", h.resetPassword).Methods("POST")

	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/contact", h.contact).Methods("POST")

	r.HandleFunc("/api/user", h.getUser).Methods("GET")
	r.HandleFunc("/api/user", h.updateUser).Methods("PUT")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.addToCart).Methods("POST")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/count", h.getCartCount).Methods("GET")
	r.HandleFunc("/api/cart/{itemId}", h.removeFromCart).Methods("DELETE")
	r.HandleFunc("/api/cart/{itemId}/quantity", h.updateQuantity).Methods("PUT")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/orders/{reference}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/order-history", h.getOrderHistory).Methods("GET")
	r.HandleFunc("/api/ratings", h.submitRating).Methods("POST")

	r.HandleFunc("/api/pickup", h.schedulePickup).Methods("POST")

	r.HandleFunc("/api/reservations/tables", h.getTables).Methods("GET")
	r.HandleFunc("/api/reservations/tables/{index}/toggle", h.toggleTable).Methods("POST")
	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "tastybites-web",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeAuthRequired(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error":    message,
		"redirect": "/login",
	})
}

// writeFailure converts a workflow or backend error into user-visible text.
// Nothing propagates as an unhandled fault.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotAuthenticated):
		writeAuthRequired(w, err.Error())
	case errors.Is(err, workflow.ErrEmptyCart),
		errors.Is(err, workflow.ErrNoTablesSelected),
		errors.Is(err, workflow.ErrPickupDateTime):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, workflow.ErrCheckoutPending),
		errors.Is(err, workflow.ErrTablesConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = genericErrorMessage
			}
			writeError(w, apiErr.Status, message)
			return
		}
		writeError(w, http.StatusBadGateway, genericErrorMessage)
	}
}

func (h *Handler) resolveSession(r *http.Request) (domain.SessionState, string, error) {
	cookie := r.Header.Get("Cookie")
	state, err := h.Sessions.Refresh(r.Context(), cookie)
	return state, cookie, err
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	state, _, err := h.resolveSession(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	result, err := h.Gateway.Login(r.Context(), creds)
	if err != nil {
		writeFailure(w, err)
		return
	}

	forwardSetCookie(w, result.SetCookie)
	writeMessage(w, http.StatusOK, result.Message)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var s domain.Signup
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if s.Username == "" || s.Email == "" || s.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	result, err := h.Gateway.Signup(r.Context(), s)
	if err != nil {
		writeFailure(w, err)
		return
	}

	forwardSetCookie(w, result.SetCookie)
	writeMessage(w, http.StatusCreated, result.Message)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	result, err := h.Sessions.Logout(r.Context(), r.Header.Get("Cookie"))
	if err != nil {
		writeFailure(w, err)
		return
	}

	forwardSetCookie(w, result.SetCookie)
	writeMessage(w, http.StatusOK, result.Message)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required.")
		return
	}

	message, err := h.Gateway.ForgotPassword(r.Context(), payload.Email)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var reset domain.PasswordReset
	if err := json.NewDecoder(r.Body).Decode(&reset); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	message, err := h.Gateway.ResetPassword(r.Context(), reset)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Gateway.Products(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Gateway.Menu(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	message, err := h.Gateway.Contact(r.Context(), msg)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Gateway.User(r.Context(), r.Header.Get("Cookie"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var update domain.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	message, err := h.Gateway.UpdateUser(r.Context(), r.Header.Get("Cookie"), update)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}

// cartStore resolves the caller's cart, requiring a live session.
func (h *Handler) cartStore(w http.ResponseWriter, r *http.Request) (*cart.Store, domain.SessionState, string, bool) {
	state, cookie, err := h.resolveSession(r)
	if err != nil {
		writeFailure(w, err)
		return nil, domain.SessionState{}, "", false
	}
	if !state.Authenticated {
		writeAuthRequired(w, workflow.ErrNotAuthenticated.Error())
		return nil, domain.SessionState{}, "", false
	}
	return h.Carts.For(r.Context(), state.UserID), state, cookie, true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	store, _, _, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, store.Items())
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	store, _, _, ok := h.cartStore(w, r)
	if !ok {
		return
	}

	var item domain.CartLine
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.ID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid item")
		return
	}

	store.AddToCart(r.Context(), item)
	writeJSON(w, http.StatusOK, store.Items())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	store, _, _, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	store.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCartCount(w http.ResponseWriter, r *http.Request) {
	store, _, _, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": store.GetCartCount()})
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	store, _, _, ok := h.cartStore(w, r)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	store.RemoveFromCart(r.Context(), itemID)
	writeJSON(w, http.StatusOK, store.Items())
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	store, _, _, ok := h.cartStore(w, r)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	// Decrements that would reach zero are rejected here; removal is the
	// way out of the cart.
	if payload.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	store.UpdateQuantity(r.Context(), itemID, payload.Quantity)
	writeJSON(w, http.StatusOK, store.Items())
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	state, cookie, err := h.resolveSession(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	store := h.Carts.For(r.Context(), state.UserID)
	conf, err := h.Orders.Checkout(r.Context(), cookie, state, store)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, ok := h.Orders.QRCode(mux.Vars(r)["reference"])
	if !ok {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) getOrderHistory(w http.ResponseWriter, r *http.Request) {
	state, cookie, err := h.resolveSession(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !state.Authenticated {
		writeAuthRequired(w, "You must be logged in to view your order history.")
		return
	}

	entries, err := h.Gateway.OrderHistory(r.Context(), cookie)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) submitRating(w http.ResponseWriter, r *http.Request) {
	var rating domain.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if rating.Rating == 0 || rating.Comment == "" {
		writeError(w, http.StatusBadRequest, "Please provide both a rating and comment.")
		return
	}

	message, err := h.Gateway.SubmitRating(r.Context(), r.Header.Get("Cookie"), rating)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}

func (h *Handler) schedulePickup(w http.ResponseWriter, r *http.Request) {
	state, cookie, err := h.resolveSession(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var payload struct {
		Item       domain.CartLine `json:"item"`
		PickupDate string          `json:"pickup_date"`
		PickupTime string          `json:"pickup_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Item.ID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	store := h.Carts.For(r.Context(), state.UserID)
	message, err := h.Pickups.Schedule(r.Context(), cookie, state, payload.Item, payload.PickupDate, payload.PickupTime, store)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}

func (h *Handler) getTables(w http.ResponseWriter, r *http.Request) {
	// Anonymous viewers get the default grid (user id 0 never toggles).
	state, _, _ := h.resolveSession(r)
	writeJSON(w, http.StatusOK, h.Reservations.Tables(state.UserID))
}

func (h *Handler) toggleTable(w http.ResponseWriter, r *http.Request) {
	state, _, err := h.resolveSession(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !state.Authenticated {
		writeAuthRequired(w, workflow.ErrNotAuthenticated.Error())
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid table index")
		return
	}

	selected, err := h.Reservations.ToggleTable(state.UserID, index)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"selected": selected})
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	state, cookie, err := h.resolveSession(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var payload struct {
		ReservationDate string `json:"reservation_date"`
		ReservationTime string `json:"reservation_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	when, err := parseReservationTime(payload.ReservationDate, payload.ReservationTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reservation date or time")
		return
	}

	conf, err := h.Reservations.Submit(r.Context(), cookie, state, when)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}

func parseReservationTime(date, timeOfDay string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", date+" "+timeOfDay); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04", date+" "+timeOfDay)
}

func forwardSetCookie(w http.ResponseWriter, cookies []string) {
	for _, c := range cookies {
		w.Header().Add("Set-Cookie", c)
	}
}
