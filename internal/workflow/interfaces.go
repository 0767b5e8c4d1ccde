package workflow

import (
	"context"
	"errors"

	"tastybites-web/internal/domain"
)

var (
	ErrNotAuthenticated = errors.New("you must be logged in")
	ErrEmptyCart        = errors.New("your cart is empty")
	ErrCheckoutPending  = errors.New("a checkout is already in progress")
	ErrNoTablesSelected = errors.New("select at least one table")
	ErrTablesConflict   = errors.New("some of the selected tables are already reserved for the chosen time")
	ErrPickupDateTime   = errors.New("both pickup date and time are required")
)

type OrderBackend interface {
	CreateOrder(ctx context.Context, cookie string, sub domain.OrderSubmission) (string, error)
}

type ReservationBackend interface {
	CreateReservation(ctx context.Context, cookie string, req domain.ReservationRequest) (string, error)
}

type PickupBackend interface {
	SchedulePickup(ctx context.Context, cookie string, req domain.PickupRequest) (string, error)
}

// Cart is the slice of the cart store the workflows touch.
type Cart interface {
	Items() []domain.CartLine
	AddToCart(ctx context.Context, item domain.CartLine)
	ClearCart(ctx context.Context)
}

type ActivityPublisher interface {
	Publish(ctx context.Context, event domain.ActivityEvent) error
}

type QRGenerator interface {
	Generate(reference string) ([]byte, error)
}
