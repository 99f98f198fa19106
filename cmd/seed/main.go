package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"shopadmin/internal/auth"
	"shopadmin/internal/config"
	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
	"shopadmin/internal/repository/mongodb"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("[seed] %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "create an admin account and optional sample orders",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", EnvVars: []string{"SEED_ADMIN_EMAIL"}, Value: "admin@example.com"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"SEED_ADMIN_PASSWORD"}, Required: true},
			&cli.StringFlag{Name: "name", EnvVars: []string{"SEED_ADMIN_NAME"}, Value: "Admin"},
			&cli.IntFlag{Name: "sample-orders", Usage: "sample orders to create for a demo customer"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Storage != config.StorageMongo {
		return fmt.Errorf("seeding needs STORAGE=%s", config.StorageMongo)
	}

	ctx, cancel := context.WithTimeout(c.Context, time.Minute)
	defer cancel()
	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer db.Client().Disconnect(context.Background())
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Printf("[seed] connected to MongoDB database %q", cfg.MongoDBName)

	users := mongodb.NewUserRepository(db)
	hash, err := auth.HashPassword(c.String("password"))
	if err != nil {
		return err
	}
	admin := &domain.User{
		Email:        c.String("email"),
		Name:         c.String("name"),
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return fmt.Errorf("admin with email %q already exists", admin.Email)
		}
		return err
	}
	log.Printf("[seed] created admin %s", admin.Email)

	if n := c.Int("sample-orders"); n > 0 {
		if err := seedOrders(ctx, users, mongodb.NewOrderRepository(db), n); err != nil {
			return err
		}
		log.Printf("[seed] created %d sample orders", n)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}
	token, err := tokens.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Role:  %s\n", admin.Role)
	fmt.Printf("Token: %s\n", token)
	fmt.Println()
	fmt.Println("Sign in at /login, or send the token as the admin_token cookie.")
	return nil
}

func seedOrders(ctx context.Context, users repository.UserRepository, orders repository.OrderRepository, n int) error {
	customer, err := users.GetByEmail(ctx, "customer@example.com")
	if errors.Is(err, repository.ErrNotFound) {
		customer = &domain.User{Email: "customer@example.com", Name: "Demo Customer", Role: "customer"}
		err = users.Create(ctx, customer)
	}
	if err != nil {
		return fmt.Errorf("demo customer: %w", err)
	}

	for i := 0; i < n; i++ {
		qty := int64(i%3 + 1)
		o := &domain.Order{
			UserID: customer.ID,
			Items: []domain.OrderItem{
				{ProductID: fmt.Sprintf("sample-%d", i+1), Name: fmt.Sprintf("Sample item %d", i+1), Quantity: qty, Price: 9.99},
			},
			Total:  9.99 * float64(qty),
			Status: domain.OrderStatuses[i%len(domain.OrderStatuses)],
		}
		if err := orders.Create(ctx, o); err != nil {
			return fmt.Errorf("create sample order: %w", err)
		}
	}
	return nil
}
