package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huawei-ekit/catalog_backend/models"
	"github.com/huawei-ekit/catalog_backend/services"
)

// CatalogController serves the public catalog read path.
type CatalogController struct {
	resolver *services.CatalogResolver
}

func NewCatalogController(resolver *services.CatalogResolver) *CatalogController {
	return &CatalogController{resolver: resolver}
}

type navbarPathParams struct {
	Slug string `param:"slug" validate:"required,catalogslug"`
}

type productPathParams struct {
	Slug            string `param:"slug" validate:"required,catalogslug"`
	CategorySlug    string `param:"categorySlug" validate:"required,catalogslug"`
	SubCategorySlug string `param:"subCategorySlug" validate:"required,catalogslug"`
	ProductSlug     string `param:"productSlug" validate:"required,catalogslug"`
}

// GetNavbarCategory returns a navbar category and its active categories,
// newest first.
func (cc *CatalogController) GetNavbarCategory(c echo.Context) error {
	var params navbarPathParams
	if err := c.Bind(&params); err != nil {
		return notFoundResponse(c)
	}
	if err := c.Validate(&params); err != nil {
		// A malformed slug can never resolve; same uniform outcome.
		return notFoundResponse(c)
	}

	data, err := cc.resolver.ResolveCategoriesOf(c.Request().Context(), params.Slug)
	if err != nil {
		return notFoundResponse(c)
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Navbar category retrieved successfully",
		Data:    data,
	})
}

// GetProduct resolves the full 4-segment product path and returns the
// flat product view.
func (cc *CatalogController) GetProduct(c echo.Context) error {
	var params productPathParams
	if err := c.Bind(&params); err != nil {
		return notFoundResponse(c)
	}
	if err := c.Validate(&params); err != nil {
		return notFoundResponse(c)
	}

	view, err := cc.resolver.ResolveProduct(c.Request().Context(),
		params.Slug, params.CategorySlug, params.SubCategorySlug, params.ProductSlug)
	if err != nil {
		return notFoundResponse(c)
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product retrieved successfully",
		Data:    view,
	})
}

// GetAllCategories returns every active navbar category with its active
// categories. Feeds the products index page.
func (cc *CatalogController) GetAllCategories(c echo.Context) error {
	data, err := cc.resolver.ListNavbarCategories(c.Request().Context())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFoundResponse(c)
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch categories",
		})
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Categories retrieved successfully",
		Data:    data,
	})
}

// notFoundResponse is the single not-found shape the page layer sees,
// whatever the underlying reason was.
func notFoundResponse(c echo.Context) error {
	return c.JSON(http.StatusNotFound, models.Response{
		Status:  http.StatusNotFound,
		Message: "Not found",
	})
}
