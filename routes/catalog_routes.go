package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huawei-ekit/catalog_backend/controllers"
	"github.com/huawei-ekit/catalog_backend/middleware"
	"github.com/huawei-ekit/catalog_backend/repositories"
	"github.com/huawei-ekit/catalog_backend/services"
)

// RegisterCatalogRoutes sets up the public catalog read path and the
// admin integrity audit.
func RegisterCatalogRoutes(e *echo.Echo, db *mongo.Database) {
	resolver := services.NewCatalogResolver(repositories.NewMongoStore(db))
	catalogController := controllers.NewCatalogController(resolver)
	integrityController := controllers.NewIntegrityController(resolver)

	// Public routes (no auth required)
	catalog := e.Group("/api/catalog")
	catalog.GET("/:slug", catalogController.GetNavbarCategory)
	catalog.GET("/:slug/:categorySlug/:subCategorySlug/:productSlug", catalogController.GetProduct)

	e.GET("/api/categories", catalogController.GetAllCategories)

	// Admin protected routes
	admin := e.Group("/api/admin")
	admin.Use(middleware.AdminJWTMiddleware())
	admin.GET("/integrity/products/:productSlug", integrityController.AuditProduct)
}
