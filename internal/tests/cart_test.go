package tests

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"tastybites-web/internal/cart"
	"tastybites-web/internal/domain"
)

func pasta() domain.CartLine {
	return domain.CartLine{ID: 1, Title: "Pasta Carbonara", Price: 12.5, ImageLink: "/img/pasta.jpg"}
}

func pizza() domain.CartLine {
	return domain.CartLine{ID: 2, Title: "Margherita", Price: 9.0, ImageLink: "/img/pizza.jpg"}
}

func TestStore_AddAccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, 7, cart.NewMemoryStorage())

	store.AddToCart(ctx, pasta())
	store.AddToCart(ctx, pasta())
	store.AddToCart(ctx, pasta())

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, store.GetCartCount())
}

func TestStore_RemoveThenAddResetsQuantity(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, 7, cart.NewMemoryStorage())

	store.AddToCart(ctx, pasta())
	store.AddToCart(ctx, pasta())
	store.RemoveFromCart(ctx, 1)
	store.AddToCart(ctx, pasta())

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_CountEqualsSumOfQuantities(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, 7, cart.NewMemoryStorage())

	store.AddToCart(ctx, pasta())
	store.AddToCart(ctx, pizza())
	store.AddToCart(ctx, pizza())
	store.UpdateQuantity(ctx, 1, 5)
	store.RemoveFromCart(ctx, 2)

	assert.Equal(t, 5, store.GetCartCount())

	store.UpdateQuantity(ctx, 1, 2)
	assert.Equal(t, 2, store.GetCartCount())
}

func TestStore_UpdateQuantityFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, 7, cart.NewMemoryStorage())

	store.AddToCart(ctx, pasta())
	store.UpdateQuantity(ctx, 1, 0)

	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestStore_RemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, 7, cart.NewMemoryStorage())

	store.AddToCart(ctx, pasta())
	store.RemoveFromCart(ctx, 99)

	assert.Equal(t, 1, store.GetCartCount())
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	storage := cart.NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	store := cart.NewRegistry(storage).For(ctx, 7)
	store.AddToCart(ctx, pasta())
	store.AddToCart(ctx, pasta())
	store.AddToCart(ctx, pizza())

	// A fresh registry simulates a new process rehydrating the same slot.
	reloaded := cart.NewRegistry(storage).For(ctx, 7)

	assert.Equal(t, store.Items(), reloaded.Items())
	assert.Equal(t, 3, reloaded.GetCartCount())
}

func TestRegistry_UsersNeverShareSlots(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	storage := cart.NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	registry := cart.NewRegistry(storage)

	registry.For(ctx, 1).AddToCart(ctx, pasta())

	assert.Empty(t, registry.For(ctx, 2).Items())
	assert.Equal(t, 1, registry.For(ctx, 1).GetCartCount())

	// Same isolation after a rehydrate.
	fresh := cart.NewRegistry(storage)
	assert.Empty(t, fresh.For(ctx, 2).Items())
	assert.Equal(t, 1, fresh.For(ctx, 1).GetCartCount())
}

func TestRedisStorage_CorruptSlotLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	storage := cart.NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	mr.Set("cart:user:9", "{not json")

	store := cart.NewStore(ctx, 9, storage)
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.GetCartCount())
}

func TestStore_ClearRemovesPersistedSlot(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	storage := cart.NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	store := cart.NewStore(ctx, 7, storage)
	store.AddToCart(ctx, pasta())
	assert.True(t, mr.Exists("cart:user:7"))

	store.ClearCart(ctx)

	assert.False(t, mr.Exists("cart:user:7"))
	assert.Empty(t, store.Items())
}
