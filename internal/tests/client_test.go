package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tastybites-web/internal/backend"
	"tastybites-web/internal/domain"
)

func TestClient_CheckSession_NormalizesCasing(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected domain.SessionState
	}{
		{
			name:     "camel_case_user_id",
			body:     `{"isLoggedIn":true,"email":"diner@example.com","userId":12}`,
			expected: domain.SessionState{Authenticated: true, UserID: 12, Email: "diner@example.com"},
		},
		{
			name:     "snake_case_user_id",
			body:     `{"isLoggedIn":true,"email":"diner@example.com","user_id":12}`,
			expected: domain.SessionState{Authenticated: true, UserID: 12, Email: "diner@example.com"},
		},
		{
			name:     "logged_out_ignores_leftover_fields",
			body:     `{"isLoggedIn":false,"email":"stale@example.com"}`,
			expected: domain.SessionState{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/check-session", r.URL.Path)
				assert.Equal(t, "session=xyz", r.Header.Get("Cookie"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client := backend.NewClient(server.URL, nil)
			state, err := client.CheckSession(context.Background(), "session=xyz")

			assert.NoError(t, err)
			assert.Equal(t, testCase.expected, state)
		})
	}
}

func TestClient_BusinessErrorCarriesStatusAndMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Some tables are already reserved."}`))
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, nil)
	_, err := client.CreateReservation(context.Background(), "session=xyz", domain.ReservationRequest{
		ReservationDate: "2025-08-30",
		ReservationTime: "18:30:00",
		TablesReserved:  []int{4},
	})

	var apiErr *backend.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Some tables are already reserved.", apiErr.Message)
}

func TestClient_CreateOrder_SendsCartShape(t *testing.T) {
	var received domain.OrderSubmission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Order placed successfully."}`))
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, nil)
	sub := domain.OrderSubmission{Items: []domain.OrderItem{{ItemID: 1, Quantity: 2}}}
	message, err := client.CreateOrder(context.Background(), "session=xyz", sub)

	assert.NoError(t, err)
	assert.Equal(t, "Order placed successfully.", message)
	assert.Equal(t, sub, received)
}

func TestClient_Login_CapturesSetCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		assert.Equal(t, "diner@example.com", creds.Email)

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "fresh"})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Login successful!"}`))
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, nil)
	result, err := client.Login(context.Background(), domain.Credentials{
		Email:    "diner@example.com",
		Password: "secret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Login successful!", result.Message)
	assert.NotEmpty(t, result.SetCookie)
	assert.Contains(t, result.SetCookie[0], "session=fresh")
}

func TestClient_TransportFailureIsNotAPIError(t *testing.T) {
	client := backend.NewClient("http://127.0.0.1:1", nil)

	_, err := client.Products(context.Background())

	assert.Error(t, err)
	var apiErr *backend.APIError
	assert.False(t, errors.As(err, &apiErr))
}
