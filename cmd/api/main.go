package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-catat-jualan/internal/config"
	"go-catat-jualan/internal/handler"
	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/notify"
	"go-catat-jualan/internal/repository"
	"go-catat-jualan/internal/service"
	"go-catat-jualan/internal/sheets"
	"go-catat-jualan/internal/ws"
	"go-catat-jualan/pkg/jwt"
)

func main() {
	// 1. Load Env
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.InsecureSecret() {
		log.Warn(ctx, "JWT_SECRET not set, using development secret")
	}

	// 2. Setup row store. A missing configuration is not fatal: /api answers 503.
	storeReady := cfg.StoreConfigured()
	var store sheets.RowStore = sheets.NewMemoryStore()
	closeStore := func() error { return nil }
	if storeReady {
		s, closeFn, err := sheets.Open(ctx, cfg.Store)
		if err != nil {
			log.Error(ctx, "row store unavailable", "backend", cfg.Store.Backend, "error", err)
			storeReady = false
		} else {
			store, closeStore = s, closeFn
			if err := sheets.EnsureAll(ctx, store); err != nil {
				log.Warn(ctx, "ensure tables failed", "error", err)
			}
		}
	} else {
		log.Warn(ctx, "row store not configured", "backend", cfg.Store.Backend)
	}
	defer closeStore()

	// 3. Setup WebSocket Hub and event fan-out
	wsHub := ws.NewHub(log)
	go wsHub.Run(ctx)

	notifiers := notify.Multi{wsHub}
	brokers := openBrokers(ctx, cfg.Events, cfg.Store, log)
	for _, b := range brokers {
		notifiers = append(notifiers, b)
	}
	events := notify.NewDispatcher(notifiers, log)

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(store)
	shopRepo := repository.NewShopRepo(store)
	productRepo := repository.NewProductRepo(store)
	txRepo := repository.NewTransactionRepo(store)
	costRepo := repository.NewOperationalCostRepo(store)
	orderRepo := repository.NewOrderRepo(store)

	clock := service.NewClock(cfg.Location())
	issuer := jwt.NewIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTTL)

	services := handler.Services{
		Auth:      service.NewAuthService(userRepo, issuer, clock, service.WithResetTokenInResponse(cfg.ResetTokenInResponse)),
		Inventory: service.NewInventoryService(productRepo, txRepo, events, clock, log),
		Orders:    service.NewOrderService(orderRepo, productRepo, txRepo, events, clock, log),
		Shop:      service.NewShopService(shopRepo, clock),
		Costs:     service.NewOperationalCostService(costRepo, clock),
		Admin:     service.NewAdminService(userRepo, productRepo, orderRepo, txRepo, cfg.AdminUserIDs),
		Reports:   service.NewReportService(productRepo, txRepo, clock),
	}

	// 5. Setup Fiber
	app := handler.NewApp(handler.AppConfig{
		AppName:         "Catat Jualan API",
		CORSOrigins:     cfg.CORSOrigins,
		StoreConfigured: storeReady,
		AccessLog:       true,
	}, services, wsHub, log)

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error(ctx, "server stopped", "error", err)
			stop()
		}
	}()
	if cfg.ResetTokenInResponse {
		log.Warn(ctx, "RESET_TOKEN_IN_RESPONSE is on; forgot-password returns reset tokens to the caller")
	}
	log.Info(ctx, "server started", "port", cfg.Port, "backend", cfg.Store.Backend, "store_ready", storeReady)

	<-ctx.Done()

	log.Info(context.Background(), "shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error(context.Background(), "server forced to shutdown", "error", err)
	}
	events.Wait()
	for _, b := range brokers {
		if err := b.Close(); err != nil {
			log.Warn(context.Background(), "broker close failed", "error", err)
		}
	}
	log.Info(context.Background(), "server exited")
}

// openBrokers connects the optional AMQP and Pub/Sub event sinks. A broker
// that can't be reached is logged and skipped.
func openBrokers(ctx context.Context, ev config.EventsConfig, store config.StoreConfig, log logging.Logger) []*notify.BrokerNotifier {
	var out []*notify.BrokerNotifier

	if ev.AMQPURL != "" {
		client, err := notify.NewRabbitMQClient(ev.AMQPURL)
		if err != nil {
			log.Warn(ctx, "rabbitmq unavailable", "error", err)
		} else {
			out = append(out, notify.NewBrokerNotifier(client, ev.AMQPQueue))
			log.Info(ctx, "publishing events to rabbitmq", "queue", ev.AMQPQueue)
		}
	}

	if ev.PubSubProjectID != "" && ev.PubSubTopic != "" {
		client, err := notify.NewPubSubClient(ctx, ev.PubSubProjectID, store.CredentialsFile, store.CredentialsJSON)
		if err != nil {
			log.Warn(ctx, "pubsub unavailable", "error", err)
		} else {
			out = append(out, notify.NewBrokerNotifier(client, ev.PubSubTopic))
			log.Info(ctx, "publishing events to pubsub", "topic", ev.PubSubTopic)
		}
	}
	return out
}
