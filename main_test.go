package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	httpapi "tastybites-web/internal/api/http"
	"tastybites-web/internal/backend"
	"tastybites-web/internal/cart"
	"tastybites-web/internal/session"
	"tastybites-web/internal/workflow"
)

// buildTestStack wires the full handler against a fake backend and a
// miniredis-backed cart store, the same way main does for real services.
func buildTestStack(t *testing.T, backendHandler http.Handler) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	fakeBackend := httptest.NewServer(backendHandler)
	t.Cleanup(fakeBackend.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	client := backend.NewClient(fakeBackend.URL, &http.Client{})
	carts := cart.NewRegistry(cart.NewRedisStorage(rdb))

	handler := &httpapi.Handler{
		Sessions:     session.NewManager(client),
		Carts:        carts,
		Orders:       workflow.NewOrderWorkflow(client, nil, &workflow.OrderQRGenerator{BaseURL: fakeBackend.URL}),
		Reservations: workflow.NewReservationWorkflow(client, nil),
		Pickups:      workflow.NewPickupWorkflow(client),
		Gateway:      client,
	}

	return httpapi.NewRouter(handler, []string{"http://localhost:3000"}), mr
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := buildTestStack(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestCartSurvivesRedisRoundTrip(t *testing.T) {
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/check-session" {
			t.Fatalf("unexpected backend call: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"isLoggedIn":true,"email":"diner@example.com","userId":7}`))
	})
	router, mr := buildTestStack(t, backendHandler)

	item := `{"id":1,"title":"Margherita","price":9.5,"quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewBufferString(item))
	req.Header.Set("Cookie", "session=abc")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 adding to cart, got %d: %s", rr.Code, rr.Body.String())
	}
	if !mr.Exists("cart:user:7") {
		t.Fatal("expected cart slot in redis after add")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/cart/count", nil)
	req.Header.Set("Cookie", "session=abc")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var count map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&count); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	if count["count"] != 1 {
		t.Fatalf("expected count 1, got %d", count["count"])
	}
}

func TestCartBlockedWithoutSession(t *testing.T) {
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"isLoggedIn":false}`))
	})
	router, _ := buildTestStack(t, backendHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"redirect":"/login"`)) {
		t.Fatalf("expected login redirect hint, got %s", rr.Body.String())
	}
}
