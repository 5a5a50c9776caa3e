package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huawei-ekit/catalog_backend/models"
	"github.com/huawei-ekit/catalog_backend/services"
)

func auditRequest(t *testing.T, store *stubStore, slug string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho(t)
	controller := NewIntegrityController(services.NewCatalogResolver(store))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/admin/integrity/products/:productSlug")
	c.SetParamNames("productSlug")
	c.SetParamValues(slug)

	require.NoError(t, controller.AuditProduct(c))
	return rec
}

func TestAuditProductConsistent(t *testing.T) {
	rec := auditRequest(t, testHierarchy(), "ar6300")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data services.IntegrityReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Consistent)
	assert.Empty(t, resp.Data.Reason)
}

func TestAuditProductReportsDrift(t *testing.T) {
	store := testHierarchy()
	// Same slug, different identity: invisible to slug checks,
	// only the audit reason makes it observable.
	store.product.Category = &models.Category{
		ID: primitive.NewObjectID(), Name: "Routers", Slug: "routers", IsActive: true,
	}

	rec := auditRequest(t, store, "ar6300")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data services.IntegrityReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Consistent)
	assert.Equal(t, "hierarchy-drift", resp.Data.Reason)
}

func TestAuditProductUnknownSlug(t *testing.T) {
	rec := auditRequest(t, testHierarchy(), "unknown-product")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
