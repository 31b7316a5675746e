package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	users "github.com/goliatone/go-users"
	"github.com/goliatone/go-users/middleware/authware"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	cfg, err := users.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()

	// Unique constraints on username/email_address ride along with the model
	// definition; they are the real duplicate-account guarantee.
	if _, err := db.NewCreateTable().
		Model((*users.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	repo := users.NewRepositoryManager(db)
	repo.MustValidate()

	users.EnsureAdminAccount(ctx, repo.Users(), users.BcryptAuthenticator{}, cfg.Bootstrap(), nil)

	service := users.NewUserService(repo.Users())

	controller := users.NewUsersController(service,
		users.WithControllerDebug(cfg.Debug),
	)

	guard := authware.New(authware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		JWKSetURL:  cfg.JWKSetURL,
	})

	app := fiber.New(fiber.Config{
		AppName: users.ServiceName,
	})

	users.RegisterUserRoutes(app, controller, guard)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	waitExitSignal()

	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func waitExitSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
