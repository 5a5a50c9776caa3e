package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/huawei-ekit/catalog_backend/models"
	"github.com/huawei-ekit/catalog_backend/repositories"
)

// ErrNotFound is the only failure the public resolution operations
// report. Missing entities, inactive entities, adapter failures and
// hierarchy validation failures all collapse to it so the page layer
// renders one uniform not-found page; the richer reasons stay in the
// logs and in AuditProduct.
var ErrNotFound = errors.New("not found")

const (
	collNavbarCategories = "navbarcategories"
	collCategories       = "categories"
	collSubcategories    = "subcategories"
	collProducts         = "products"
)

// CatalogResolver resolves slug chains against the catalog hierarchy,
// verifying referential integrity before returning anything.
type CatalogResolver struct {
	store repositories.EntityStore
	log   *logrus.Entry
}

func NewCatalogResolver(store repositories.EntityStore) *CatalogResolver {
	return &CatalogResolver{
		store: store,
		log:   logrus.WithField("component", "catalog_resolver"),
	}
}

// ResolveNavbarCategory fetches the active navbar category with the
// given slug.
func (r *CatalogResolver) ResolveNavbarCategory(ctx context.Context, navbarSlug string) (*models.NavbarCategory, error) {
	var navbar models.NavbarCategory
	err := r.store.FindOne(ctx, collNavbarCategories, bson.M{"slug": navbarSlug, "isActive": true}, &navbar)
	if err != nil {
		return nil, r.notFound(err, navbarSlug)
	}
	return &navbar, nil
}

// ResolveCategoriesOf resolves a navbar category and lists its active
// categories, newest first. New categories surfacing first is a product
// decision, not an accident of storage order.
func (r *CatalogResolver) ResolveCategoriesOf(ctx context.Context, navbarSlug string) (*models.NavbarCategoryWithCategories, error) {
	navbar, err := r.ResolveNavbarCategory(ctx, navbarSlug)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	err = r.store.FindMany(ctx, collCategories,
		bson.M{"navbarCategory": navbar.ID, "isActive": true},
		bson.D{{Key: "createdAt", Value: -1}},
		&categories)
	if err != nil {
		return nil, r.notFound(err, navbarSlug)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return &models.NavbarCategoryWithCategories{
		NavbarCategory: *navbar,
		Categories:     categories,
	}, nil
}

// ListNavbarCategories returns every active navbar category in display
// order, each with its active categories, newest first. This feeds the
// products index page.
func (r *CatalogResolver) ListNavbarCategories(ctx context.Context) ([]models.NavbarCategoryWithCategories, error) {
	var navbars []models.NavbarCategory
	err := r.store.FindMany(ctx, collNavbarCategories,
		bson.M{"isActive": true},
		bson.D{{Key: "order", Value: 1}},
		&navbars)
	if err != nil {
		return nil, err
	}

	result := make([]models.NavbarCategoryWithCategories, 0, len(navbars))
	for _, navbar := range navbars {
		var categories []models.Category
		err := r.store.FindMany(ctx, collCategories,
			bson.M{"navbarCategory": navbar.ID, "isActive": true},
			bson.D{{Key: "createdAt", Value: -1}},
			&categories)
		if err != nil {
			return nil, err
		}
		if categories == nil {
			categories = []models.Category{}
		}
		result = append(result, models.NavbarCategoryWithCategories{
			NavbarCategory: navbar,
			Categories:     categories,
		})
	}
	return result, nil
}

// ResolveProduct fetches the active product with the given slug, expands
// its ancestor references and the live subcategory chain in one logical
// fetch, validates the requested slug chain against them, and projects
// the flat view. Every failure mode collapses to ErrNotFound.
func (r *CatalogResolver) ResolveProduct(ctx context.Context, navbarSlug, categorySlug, subCategorySlug, productSlug string) (*models.FlatProductView, error) {
	var product models.ProductWithHierarchy
	err := r.store.FindOne(ctx, collProducts,
		bson.M{"slug": productSlug, "isActive": true},
		&product,
		productHierarchyExpand()...)
	if err != nil {
		return nil, r.notFound(err, productSlug)
	}

	requested := RequestedSlugs{
		NavbarCategory: navbarSlug,
		Category:       categorySlug,
		Subcategory:    subCategorySlug,
	}
	if err := ValidateHierarchy(&product, requested); err != nil {
		r.logValidationFailure(productSlug, err)
		return nil, ErrNotFound
	}

	// The leaf's isActive is part of the fetch filter; ancestors are
	// checked here so a deactivated branch takes its products with it.
	if !product.NavbarCategory.IsActive || !product.Category.IsActive || !product.Subcategory.IsActive {
		return nil, ErrNotFound
	}

	return ProjectProduct(&product), nil
}

// IntegrityReport is the outcome of auditing one product's stored
// hierarchy against its live subcategory chain.
type IntegrityReport struct {
	ProductID  string `json:"productId"`
	Slug       string `json:"slug"`
	IsActive   bool   `json:"isActive"`
	Consistent bool   `json:"consistent"`
	Reason     string `json:"reason,omitempty"`
	Level      string `json:"level,omitempty"`
}

// AuditProduct fetches a product by slug regardless of activity and runs
// the hierarchy validator against the product's own stored ancestor
// slugs, surfacing the rich reason the public boundary folds away. The
// self-referential slug chain trivially matches, so an inconsistent
// report always means a missing reference or real drift.
func (r *CatalogResolver) AuditProduct(ctx context.Context, productSlug string) (*IntegrityReport, error) {
	var product models.ProductWithHierarchy
	err := r.store.FindOne(ctx, collProducts, bson.M{"slug": productSlug}, &product, productHierarchyExpand()...)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	requested := RequestedSlugs{}
	if product.NavbarCategory != nil {
		requested.NavbarCategory = product.NavbarCategory.Slug
	}
	if product.Category != nil {
		requested.Category = product.Category.Slug
	}
	if product.Subcategory != nil {
		requested.Subcategory = product.Subcategory.Slug
	}

	report := &IntegrityReport{
		ProductID:  product.ID.Hex(),
		Slug:       product.Slug,
		IsActive:   product.IsActive,
		Consistent: true,
	}
	if err := ValidateHierarchy(&product, requested); err != nil {
		var herr *HierarchyError
		if errors.As(err, &herr) {
			report.Consistent = false
			report.Reason = herr.Error()
			report.Level = herr.Level
		}
	}
	return report, nil
}

// productHierarchyExpand is the expansion the product path always uses:
// the three denormalized references plus the subcategory's own
// category → navbarCategory chain, which the drift check needs.
func productHierarchyExpand() []repositories.ExpandSpec {
	ancestorFields := []string{"name", "slug", "isActive"}
	return []repositories.ExpandSpec{
		{Path: "navbarCategory", From: collNavbarCategories, Select: ancestorFields},
		{Path: "category", From: collCategories, Select: ancestorFields},
		{Path: "subcategory", From: collSubcategories, Expand: []repositories.ExpandSpec{
			{Path: "category", From: collCategories, Expand: []repositories.ExpandSpec{
				{Path: "navbarCategory", From: collNavbarCategories, Select: ancestorFields},
			}},
		}},
	}
}

// notFound maps any fetch failure to the uniform public outcome, keeping
// the distinction in the logs only.
func (r *CatalogResolver) notFound(err error, slug string) error {
	if !errors.Is(err, repositories.ErrNotFound) {
		r.log.WithError(err).WithField("slug", slug).Warn("resolution fetch failed")
	}
	return ErrNotFound
}

func (r *CatalogResolver) logValidationFailure(productSlug string, err error) {
	var herr *HierarchyError
	if errors.As(err, &herr) && herr.Reason == ReasonHierarchyDrift {
		// Drift is a data-quality bug, not a user following a stale
		// link; keep it loud enough to alert on.
		r.log.WithFields(logrus.Fields{
			"product": productSlug,
			"reason":  herr.Error(),
		}).Warn("denormalized hierarchy disagrees with subcategory chain")
		return
	}
	r.log.WithFields(logrus.Fields{
		"product": productSlug,
		"reason":  err.Error(),
	}).Debug("hierarchy validation rejected request")
}
