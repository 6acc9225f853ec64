package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"points-leaderboard/handlers"
	"points-leaderboard/middleware"
	"points-leaderboard/services"
	"points-leaderboard/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	app.Use(middleware.RequestLogger())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := selectStorage(ctx)

	claimService := services.NewClaimService(store)

	handlers.SetupLeaderboardRoutes(app, store, claimService)

	// Client bundle; unknown paths fall through to index.html for the SPA
	// router.
	app.Use("/", filesystem.New(filesystem.Config{
		Root:         http.Dir("./public"),
		Index:        "index.html",
		NotFoundFile: "index.html",
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// selectStorage picks the backend once for the process lifetime: Postgres
// when DATABASE_URL is set and reachable, the seeded in-memory store
// otherwise. A failed connection is logged and permanently downgrades this
// instance to in-memory; it is never retried.
func selectStorage(ctx context.Context) storage.Storage {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("⚠️  DATABASE_URL not set, using in-memory storage")
		return storage.NewMemStorage()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("⚠️  Database connection failed, falling back to in-memory storage: %v", err)
		return storage.NewMemStorage()
	}

	pg := storage.NewPostgresStorage(db)
	if err := pg.Migrate(); err != nil {
		log.Printf("⚠️  Database migration failed, falling back to in-memory storage: %v", err)
		return storage.NewMemStorage()
	}
	if err := pg.SeedIfEmpty(ctx); err != nil {
		log.Printf("⚠️  Database seeding failed, falling back to in-memory storage: %v", err)
		return storage.NewMemStorage()
	}

	log.Println("✅ Connected to Postgres")
	return pg
}
