package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/api"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/events"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/repository"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/service"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/storage"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/tracing"
	_ "github.com/Shivam-knight-owl/product-tour-platform/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables")
	}

	api.SetupGlobalHandler("tourflow")

	shutdownTracer, err := tracing.InitTracerProvider("tourflow")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	mediaStore, err := storage.NewS3MediaStore()
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	tourRepo := repository.NewPostgresTourRepository(db)
	stepRepo := repository.NewPostgresStepRepository(db)
	statsRepo := repository.NewPostgresStatsRepository(db)

	authService := service.NewAuthService(userRepo)
	tourService := service.NewTourService(tourRepo, stepRepo, eventPublisher)
	statsService := service.NewStatsService(statsRepo)

	authHandler := api.NewAuthHandler(authService)
	tourHandler := api.NewTourHandler(tourService)
	statsHandler := api.NewStatsHandler(statsService)
	uploadHandler := api.NewUploadHandler(mediaStore, eventPublisher)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := app.Group("/api")

	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	userRoutes := apiGroup.Group("/users")
	userRoutes.Use(api.AuthMiddleware(userRepo))
	userRoutes.Get("/profile", authHandler.GetProfile)

	tourRoutes := apiGroup.Group("/tours")
	tourRoutes.Get("/", api.OptionalAuthMiddleware(userRepo), tourHandler.ListTours)
	tourRoutes.Get("/:id", api.OptionalAuthMiddleware(userRepo), tourHandler.GetTour)

	tourRoutes.Post("/", api.AuthMiddleware(userRepo), api.RequireRoles(model.RoleUser), tourHandler.CreateTour)
	tourRoutes.Put("/:id", api.AuthMiddleware(userRepo), api.RequireRoles(model.RoleUser), tourHandler.UpdateTour)
	tourRoutes.Delete("/:id", api.AuthMiddleware(userRepo), api.RequireRoles(model.RoleUser), tourHandler.DeleteTour)

	tourRoutes.Post("/:tourId/steps", api.AuthMiddleware(userRepo), api.RequireRoles(model.RoleUser), tourHandler.AddStep)
	tourRoutes.Put("/:tourId/steps/:stepId", api.AuthMiddleware(userRepo), api.RequireRoles(model.RoleUser), tourHandler.UpdateStep)
	tourRoutes.Delete("/:tourId/steps/:stepId", api.AuthMiddleware(userRepo), api.RequireRoles(model.RoleUser), tourHandler.DeleteStep)

	statsRoutes := apiGroup.Group("/stats")
	statsRoutes.Use(api.AuthMiddleware(userRepo))
	statsRoutes.Get("/dashboard", statsHandler.GetDashboardStats)

	uploadRoutes := apiGroup.Group("/uploads")
	uploadRoutes.Use(api.AuthMiddleware(userRepo))
	uploadRoutes.Post("/", uploadHandler.UploadMedia)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "9000"
	}

	log.Printf("Listening tourflow on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
