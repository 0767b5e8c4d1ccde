package workflow

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"tastybites-web/internal/domain"
)

const orderFallbackMessage = "Your order has been placed."

// qrCacheLimit bounds how many confirmation PNGs stay in memory; the
// oldest reference is evicted once the limit is reached.
const qrCacheLimit = 128

// Confirmation is what the UI shows after a successful checkout.
type Confirmation struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
	QRLink    string `json:"qr_link"`
}

// OrderQRGenerator encodes a link to the order confirmation page.
type OrderQRGenerator struct {
	BaseURL string
}

func (g *OrderQRGenerator) Generate(reference string) ([]byte, error) {
	return qrcode.Encode(g.BaseURL+"/orders/"+reference, qrcode.Medium, 256)
}

var _ QRGenerator = (*OrderQRGenerator)(nil)

// OrderWorkflow turns a cart into an order submission. Each user may have
// one checkout pending at a time; success empties that user's cart.
type OrderWorkflow struct {
	mu        sync.Mutex
	pending   map[int]bool
	qrCodes   map[string][]byte
	qrOrder   []string
	backend   OrderBackend
	publisher ActivityPublisher
	qr        QRGenerator
}

func NewOrderWorkflow(backend OrderBackend, publisher ActivityPublisher, qr QRGenerator) *OrderWorkflow {
	return &OrderWorkflow{
		pending:   make(map[int]bool),
		qrCodes:   make(map[string][]byte),
		backend:   backend,
		publisher: publisher,
		qr:        qr,
	}
}

// Checkout validates the session and cart, submits the order and clears the
// cart on success. No backend call is made when a precondition fails.
func (w *OrderWorkflow) Checkout(ctx context.Context, cookie string, sess domain.SessionState, cart Cart) (Confirmation, error) {
	if !sess.Authenticated {
		return Confirmation{}, ErrNotAuthenticated
	}

	items := cart.Items()
	if len(items) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	w.mu.Lock()
	if w.pending[sess.UserID] {
		w.mu.Unlock()
		return Confirmation{}, ErrCheckoutPending
	}
	w.pending[sess.UserID] = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.pending, sess.UserID)
		w.mu.Unlock()
	}()

	sub := domain.OrderSubmission{Items: make([]domain.OrderItem, 0, len(items))}
	count := 0
	for _, line := range items {
		sub.Items = append(sub.Items, domain.OrderItem{ItemID: line.ID, Quantity: line.Quantity})
		count += line.Quantity
	}

	message, err := w.backend.CreateOrder(ctx, cookie, sub)
	if err != nil {
		return Confirmation{}, err
	}
	if ctx.Err() != nil {
		// Caller is gone; the order went through but nothing local to update.
		return Confirmation{}, ctx.Err()
	}

	cart.ClearCart(ctx)

	if message == "" {
		message = orderFallbackMessage
	}

	conf := Confirmation{
		Reference: uuid.NewString(),
		Message:   message,
	}

	if w.qr != nil {
		if png, err := w.qr.Generate(conf.Reference); err == nil {
			w.storeQRCode(conf.Reference, png)
			conf.QRLink = fmt.Sprintf("/api/orders/%s/qrcode", conf.Reference)
		} else {
			log.Printf("[order] generating QR code: %v", err)
		}
	}

	if w.publisher != nil {
		event := domain.ActivityEvent{
			Type:      "order_placed",
			UserID:    sess.UserID,
			Reference: conf.Reference,
			ItemCount: count,
			Timestamp: time.Now(),
		}
		if err := w.publisher.Publish(ctx, event); err != nil {
			log.Printf("[order] publishing activity event: %v", err)
		}
	}

	return conf, nil
}

func (w *OrderWorkflow) storeQRCode(reference string, png []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.qrCodes[reference] = png
	w.qrOrder = append(w.qrOrder, reference)
	if len(w.qrOrder) > qrCacheLimit {
		oldest := w.qrOrder[0]
		w.qrOrder = w.qrOrder[1:]
		delete(w.qrCodes, oldest)
	}
}

// QRCode returns the confirmation PNG for a reference, if one was produced
// in this process and has not been evicted.
func (w *OrderWorkflow) QRCode(reference string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	png, ok := w.qrCodes[reference]
	return png, ok
}
