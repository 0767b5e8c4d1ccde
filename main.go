package main

import (
	"log"
	"net/http"

	"tastybites-web/config"
	httpapi "tastybites-web/internal/api/http"
	"tastybites-web/internal/backend"
	"tastybites-web/internal/cart"
	"tastybites-web/internal/events"
	"tastybites-web/internal/session"
	"tastybites-web/internal/workflow"
)

func main() {
	cfg := config.Load()

	client := backend.NewClient(cfg.BackendURL, &http.Client{})
	sessions := session.NewManager(client)

	var storage cart.Storage
	if cfg.RedisAddr != "" {
		storage = cart.NewRedisStorage(config.MustInitRedis(cfg.RedisAddr))
	} else {
		log.Println("REDIS_HOST not set, keeping cart slots in memory")
		storage = cart.NewMemoryStorage()
	}
	carts := cart.NewRegistry(storage)

	var publisher workflow.ActivityPublisher
	if cfg.KafkaBroker != "" {
		publisher = events.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic))
	} else {
		log.Println("KAFKA_BROKER not set, activity events disabled")
	}

	qr := &workflow.OrderQRGenerator{BaseURL: cfg.BackendURL}

	handler := &httpapi.Handler{
		Sessions:     sessions,
		Carts:        carts,
		Orders:       workflow.NewOrderWorkflow(client, publisher, qr),
		Reservations: workflow.NewReservationWorkflow(client, publisher),
		Pickups:      workflow.NewPickupWorkflow(client),
		Gateway:      client,
	}

	go func() {
		for state := range sessions.Subscribe() {
			if state.Authenticated {
				log.Printf("[session] user %d logged in", state.UserID)
			} else {
				log.Println("[session] session ended")
			}
		}
	}()

	router := httpapi.NewRouter(handler, cfg.AllowedOrigins)
	httpapi.StartServer(cfg.ListenAddr, router)
}
