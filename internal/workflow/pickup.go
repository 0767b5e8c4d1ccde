package workflow

import (
	"context"

	"tastybites-web/internal/domain"
)

// PickupWorkflow schedules a menu item for pickup and, once the backend
// accepts, drops the item into the cart annotated with the pickup slot.
type PickupWorkflow struct {
	backend PickupBackend
}

func NewPickupWorkflow(b PickupBackend) *PickupWorkflow {
	return &PickupWorkflow{backend: b}
}

func (w *PickupWorkflow) Schedule(ctx context.Context, cookie string, sess domain.SessionState, item domain.CartLine, date, timeOfDay string, cart Cart) (string, error) {
	if !sess.Authenticated {
		return "", ErrNotAuthenticated
	}
	if date == "" || timeOfDay == "" {
		return "", ErrPickupDateTime
	}

	req := domain.PickupRequest{
		ItemID:     item.ID,
		PickupDate: date,
		PickupTime: timeOfDay,
	}

	message, err := w.backend.SchedulePickup(ctx, cookie, req)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	item.PickupDate = date
	item.PickupTime = timeOfDay
	cart.AddToCart(ctx, item)

	if message == "" {
		message = "Pickup scheduled."
	}
	return message, nil
}
