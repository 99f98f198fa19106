// @title Shop admin API
// @version 1.0
// @description Admin back office: product catalogue, product images and order statuses.
// @host localhost:9091
// @BasePath /
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopadmin/internal/auth"
	"shopadmin/internal/config"
	httpapi "shopadmin/internal/http"
	"shopadmin/internal/infra/rabbitmq"
	"shopadmin/internal/repository"
	"shopadmin/internal/repository/mongodb"
	"shopadmin/internal/service"

	_ "shopadmin/docs"
)

type repos struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	health   func(context.Context) error
	close    func(context.Context)
}

func openRepos(ctx context.Context, cfg config.Config) (*repos, error) {
	if cfg.Storage == config.StorageMemory {
		log.Printf("[storage] using in-memory store")
		store := repository.NewMemoryStore()
		return &repos{
			products: store,
			orders:   repository.NewMemoryOrders(store),
			users:    repository.NewMemoryUsers(store),
			close:    func(context.Context) {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	db, err := mongodb.Connect(connectCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return nil, err
	}
	if err := mongodb.EnsureIndexes(connectCtx, db); err != nil {
		return nil, err
	}
	log.Printf("[storage] connected to MongoDB database %q", cfg.MongoDBName)
	return &repos{
		products: mongodb.NewProductRepository(db),
		orders:   mongodb.NewOrderRepository(db),
		users:    mongodb.NewUserRepository(db),
		health:   func(ctx context.Context) error { return mongodb.Ping(ctx, db) },
		close: func(ctx context.Context) {
			if err := db.Client().Disconnect(ctx); err != nil {
				log.Printf("[storage] disconnect error: %v", err)
			}
		},
	}, nil
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("[config] %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	store, err := openRepos(ctx, cfg)
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}

	var publisher service.Publisher
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("rabbitmq error: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Printf("[rabbitmq] publishing order events to exchange %q", cfg.RabbitMQExchange)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("auth error: %v", err)
	}
	sessions := auth.NewSessions(store.users, tokens)

	policy := service.Policy{GuardMutations: cfg.GuardMutations}
	productsSvc := service.NewProductService(store.products, policy)
	ordersSvc := service.NewOrderService(store.orders, publisher, policy)
	dashboardSvc := service.NewDashboardService(store.products, store.orders)

	srv := httpapi.NewServer(productsSvc, ordersSvc, dashboardSvc, sessions, httpapi.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORSOrigins:    cfg.CORSOrigins,
		SecureCookies:  !cfg.IsDevelopment(),
		Health:         store.health,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	store.close(shutdownCtx)
}
