package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/huawei-ekit/catalog_backend/config"
	"github.com/huawei-ekit/catalog_backend/middleware"
	"github.com/huawei-ekit/catalog_backend/routes"
	"github.com/huawei-ekit/catalog_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	config.InitLogger()

	// Connect to Redis (optional; rate limiter degrades without it)
	config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	catalogDB := client.Database(config.DBName())

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator with the slug rule
	v := validator.New()
	if err := utils.RegisterSlugValidation(v); err != nil {
		log.Fatal("Failed to register slug validation:", err)
	}
	e.Validator = &CustomValidator{validator: v}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.GlobalCORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{}))

	// Routes
	routes.SetupRoutes(e)
	routes.RegisterCatalogRoutes(e, catalogDB)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
