package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huawei-ekit/catalog_backend/models"
	"github.com/huawei-ekit/catalog_backend/services"
)

// IntegrityController exposes the hierarchy validator's rich failure
// reasons to operators. The public catalog boundary folds every failure
// into one not-found; this admin surface is where hierarchy-drift stays
// distinguishable from a product that never existed.
type IntegrityController struct {
	resolver *services.CatalogResolver
}

func NewIntegrityController(resolver *services.CatalogResolver) *IntegrityController {
	return &IntegrityController{resolver: resolver}
}

type auditPathParams struct {
	ProductSlug string `param:"productSlug" validate:"required,catalogslug"`
}

// AuditProduct reports whether a product's denormalized ancestor
// references agree with its live subcategory chain.
func (ic *IntegrityController) AuditProduct(c echo.Context) error {
	var params auditPathParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product slug",
		})
	}
	if err := c.Validate(&params); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product slug",
		})
	}

	report, err := ic.resolver.AuditProduct(c.Request().Context(), params.ProductSlug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to audit product",
		})
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Integrity audit completed",
		Data:    report,
	})
}
