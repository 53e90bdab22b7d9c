/**
 * @description
 * This is the main entry point for the payments worker. It is responsible
 * for initializing all components of the service: configuration, the
 * payments API client, the message broker consumer and producer, the
 * optional Redis-backed completion deduper, the two message handlers, and
 * the operational HTTP server. It wires everything together and starts the
 * worker.
 *
 * @dependencies
 * - github.com/go-chi/chi/v5 (via internal/api): Operational HTTP routing.
 * - github.com/joho/godotenv: For loading .env files during local development.
 * - github.com/redis/go-redis/v9: Optional completion-event deduplication.
 * - internal/api, internal/app, internal/config, internal/observability,
 *   pkg/paymentsclient, pkg/rabbitmq: Internal packages for the worker.
 */

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/fcg/payments-worker/internal/api"
	"github.com/fcg/payments-worker/internal/app"
	"github.com/fcg/payments-worker/internal/config"
	"github.com/fcg/payments-worker/internal/observability"
	"github.com/fcg/payments-worker/pkg/paymentsclient"
	"github.com/fcg/payments-worker/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	if strings.TrimSpace(cfg.PaymentsAPIBaseURL) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"payments api base url must be configured\" env=PAYMENTS_API_BASE_URL")
	}
	if strings.TrimSpace(cfg.PaymentsAPIInternalToken) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"payments api internal token must be configured\" env=PAYMENTS_API_INTERNAL_TOKEN")
	}

	log.Printf("level=info component=bootstrap msg=\"starting payments worker\" port=%s prefetch=%d", cfg.ServerPort, cfg.PrefetchCount)

	// Root context for every consumer and in-flight handler; cancelled on
	// shutdown so network calls abort promptly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dependency tracker is an explicit instance, not a process global.
	tracker := observability.NewLogTracker()

	gateway := paymentsclient.NewClient(cfg.PaymentsAPIBaseURL, cfg.PaymentsAPIInternalToken, tracker)

	// Event publisher. Falls back to the log publisher when the broker
	// producer is unavailable, or when the deployment keeps status events
	// local by configuration.
	var publisher app.EventPublisher = app.LogPublisher{}
	if cfg.StatusEventsTransport == "amqp" {
		producer, prodErr := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if prodErr != nil {
			log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; events recorded to log\" err=%v", prodErr)
		} else {
			defer producer.Close()
			publisher = app.NewBrokerPublisher(producer, cfg.EventsExchange)
			log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
		}
	} else {
		log.Println("level=info component=bootstrap msg=\"status events transport set to log\"")
	}

	purchaseHandler := app.NewPurchaseHandler(gateway)
	processor := app.NewPaymentProcessor(gateway, publisher, app.ParityStrategy{})

	// Optional Redis-backed completion dedup. Missing Redis degrades to
	// publishing duplicates on redelivery, which downstream consumers must
	// tolerate.
	if cfg.RedisURL != "" {
		redisOptions, parseErr := redis.ParseURL(cfg.RedisURL)
		if parseErr != nil {
			log.Printf("level=warn component=bootstrap msg=\"redis url parse failed; completion dedup disabled\" err=%v", parseErr)
		} else {
			redisClient := redis.NewClient(redisOptions)
			pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
			pingErr := redisClient.Ping(pingCtx).Err()
			cancelPing()
			if pingErr != nil {
				log.Printf("level=warn component=bootstrap msg=\"redis ping failed; completion dedup disabled\" err=%v", pingErr)
				redisClient.Close()
			} else {
				defer redisClient.Close()
				ttl := time.Duration(cfg.CompletionDedupeTTLMin) * time.Minute
				processor.SetCompletionDeduper(app.NewRedisCompletionDeduper(redisClient, cfg.CompletionDedupePrefix, ttl))
				log.Println("level=info component=bootstrap msg=\"redis connected; completion dedup enabled\"")
			}
		}
	}

	// Start the broker consumers, one bounded worker pool per queue.
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"rabbitmq consumer init failed\" err=%v", err)
	}
	defer consumer.Close()

	if err := consumer.ConsumeQueue(ctx, cfg.PurchaseQueue, cfg.PrefetchCount, purchaseHandler.HandleDelivery); err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"purchase consumer start failed\" queue=%s err=%v", cfg.PurchaseQueue, err)
	}
	if err := consumer.ConsumeQueue(ctx, cfg.PaymentQueue, cfg.PrefetchCount, processor.HandleDelivery); err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"payment consumer start failed\" queue=%s err=%v", cfg.PaymentQueue, err)
	}
	log.Printf("level=info component=bootstrap msg=\"consumers started\" purchase_queue=%s payment_queue=%s", cfg.PurchaseQueue, cfg.PaymentQueue)

	// Operational HTTP surface (health probe + banner).
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: api.NewRouter(),
	}

	go func() {
		log.Printf("level=info component=http msg=\"server listening\" addr=%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=bootstrap msg=\"shutdown started\"")

	// Cancel consumers first so in-flight handlers abort, then drain HTTP.
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=bootstrap msg=\"shutdown complete\"")
}
