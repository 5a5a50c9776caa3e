package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huawei-ekit/catalog_backend/models"
	"github.com/huawei-ekit/catalog_backend/repositories"
	"github.com/huawei-ekit/catalog_backend/services"
	"github.com/huawei-ekit/catalog_backend/utils"
)

type stubValidator struct{ v *validator.Validate }

func (s *stubValidator) Validate(i interface{}) error { return s.v.Struct(i) }

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	v := validator.New()
	require.NoError(t, utils.RegisterSlugValidation(v))
	e.Validator = &stubValidator{v: v}
	return e
}

// stubStore serves one pre-expanded product and one navbar category,
// enough for the read path handlers.
type stubStore struct {
	navbar  models.NavbarCategory
	product models.ProductWithHierarchy
}

func (s *stubStore) FindOne(_ context.Context, collection string, filter bson.M, out interface{}, _ ...repositories.ExpandSpec) error {
	slug, _ := filter["slug"].(string)
	switch collection {
	case "navbarcategories":
		if s.navbar.Slug == slug && s.navbar.IsActive {
			*out.(*models.NavbarCategory) = s.navbar
			return nil
		}
	case "products":
		if s.product.Slug == slug {
			if want, filtered := filter["isActive"].(bool); filtered && want != s.product.IsActive {
				return repositories.ErrNotFound
			}
			*out.(*models.ProductWithHierarchy) = s.product
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *stubStore) FindMany(_ context.Context, collection string, _ bson.M, _ bson.D, out interface{}) error {
	switch collection {
	case "navbarcategories":
		*out.(*[]models.NavbarCategory) = []models.NavbarCategory{s.navbar}
	case "categories":
		*out.(*[]models.Category) = []models.Category{}
	}
	return nil
}

func testHierarchy() *stubStore {
	navbarID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()

	navbar := models.NavbarCategory{ID: navbarID, Name: "Networking", Slug: "networking", IsActive: true}
	return &stubStore{
		navbar: navbar,
		product: models.ProductWithHierarchy{
			ID:             primitive.NewObjectID(),
			Name:           "AR6300",
			Slug:           "ar6300",
			KeyFeatures:    []string{"SRv6"},
			Image1:         "/uploads/ar6300.png",
			IsActive:       true,
			NavbarCategory: &navbar,
			Category:       &models.Category{ID: categoryID, Name: "Routers", Slug: "routers", IsActive: true},
			Subcategory: &models.SubcategoryWithChain{
				ID: primitive.NewObjectID(), Name: "Enterprise", Slug: "enterprise", IsActive: true,
				Category: &models.CategoryWithNavbar{
					ID: categoryID, Name: "Routers", Slug: "routers", IsActive: true,
					NavbarCategory: &navbar,
				},
			},
		},
	}
}

func productRequest(e *echo.Echo, slugs [4]string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/catalog/:slug/:categorySlug/:subCategorySlug/:productSlug")
	c.SetParamNames("slug", "categorySlug", "subCategorySlug", "productSlug")
	c.SetParamValues(slugs[0], slugs[1], slugs[2], slugs[3])
	return rec, c
}

func TestGetProductSuccess(t *testing.T) {
	e := newTestEcho(t)
	controller := NewCatalogController(services.NewCatalogResolver(testHierarchy()))

	rec, c := productRequest(e, [4]string{"networking", "routers", "enterprise", "ar6300"})
	require.NoError(t, controller.GetProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status int                    `json:"status"`
		Data   models.FlatProductView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "ar6300", resp.Data.Slug)
	assert.Equal(t, "networking", resp.Data.NavbarCategory.Slug)
	assert.Equal(t, "routers", resp.Data.Category.Slug)
	assert.Equal(t, "enterprise", resp.Data.Subcategory.Slug)
}

// Wrong segment, malformed segment and unknown product all produce the
// same envelope; the page layer renders one not-found page regardless of
// why.
func TestGetProductUniformNotFound(t *testing.T) {
	tests := []struct {
		name  string
		slugs [4]string
	}{
		{"wrong category segment", [4]string{"networking", "switches", "enterprise", "ar6300"}},
		{"unknown product", [4]string{"networking", "routers", "enterprise", "s5700"}},
		{"malformed segment", [4]string{"networking", "Bad Slug!", "enterprise", "ar6300"}},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(t)
			controller := NewCatalogController(services.NewCatalogResolver(testHierarchy()))

			rec, c := productRequest(e, tt.slugs)
			require.NoError(t, controller.GetProduct(c))
			assert.Equal(t, http.StatusNotFound, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}
	for _, body := range bodies {
		assert.JSONEq(t, bodies[0], body)
	}
}

func TestGetNavbarCategory(t *testing.T) {
	e := newTestEcho(t)
	controller := NewCatalogController(services.NewCatalogResolver(testHierarchy()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/catalog/:slug")
	c.SetParamNames("slug")
	c.SetParamValues("networking")

	require.NoError(t, controller.GetNavbarCategory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data models.NavbarCategoryWithCategories `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "networking", resp.Data.NavbarCategory.Slug)
	assert.NotNil(t, resp.Data.Categories)
}

func TestGetNavbarCategoryNotFound(t *testing.T) {
	e := newTestEcho(t)
	controller := NewCatalogController(services.NewCatalogResolver(testHierarchy()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/catalog/:slug")
	c.SetParamNames("slug")
	c.SetParamValues("storage")

	require.NoError(t, controller.GetNavbarCategory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAllCategories(t *testing.T) {
	e := newTestEcho(t)
	controller := NewCatalogController(services.NewCatalogResolver(testHierarchy()))

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.GetAllCategories(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.NavbarCategoryWithCategories `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "networking", resp.Data[0].NavbarCategory.Slug)
}
