package services

import "github.com/huawei-ekit/catalog_backend/models"

// Reason tags carried by HierarchyError.
const (
	ReasonMissingReference = "missing-reference"
	ReasonSlugMismatch     = "slug-mismatch"
	ReasonHierarchyDrift   = "hierarchy-drift"
)

// Hierarchy levels, used to qualify slug mismatches and missing
// references.
const (
	LevelNavbarCategory = "navbarCategory"
	LevelCategory       = "category"
	LevelSubcategory    = "subcategory"
)

// RequestedSlugs is the ancestor slug chain the caller asked for.
type RequestedSlugs struct {
	NavbarCategory string
	Category       string
	Subcategory    string
}

// HierarchyError reports why a product failed hierarchy validation.
// Level names the failing hierarchy level for missing references and
// slug mismatches; it is empty for drift, which is a relationship
// between levels rather than a single one.
type HierarchyError struct {
	Reason string
	Level  string
}

func (e *HierarchyError) Error() string {
	if e.Reason == ReasonSlugMismatch {
		return e.Reason + ":" + e.Level
	}
	return e.Reason
}

// ValidateHierarchy proves that every ancestor pointer stored on the
// expanded product matches the requested slug chain, and that the
// denormalized navbarCategory/category references agree with the live
// subcategory chain. Checks run in order and stop at the first failure.
// It is a pure function: no fetches, no mutation.
func ValidateHierarchy(product *models.ProductWithHierarchy, requested RequestedSlugs) error {
	if product.NavbarCategory == nil {
		return &HierarchyError{Reason: ReasonMissingReference, Level: LevelNavbarCategory}
	}
	if product.Category == nil {
		return &HierarchyError{Reason: ReasonMissingReference, Level: LevelCategory}
	}
	// A subcategory whose own expansion chain is broken is the same
	// integrity defect as a missing subcategory.
	if product.Subcategory == nil || product.Subcategory.Category == nil || product.Subcategory.Category.NavbarCategory == nil {
		return &HierarchyError{Reason: ReasonMissingReference, Level: LevelSubcategory}
	}

	if product.NavbarCategory.Slug != requested.NavbarCategory {
		return &HierarchyError{Reason: ReasonSlugMismatch, Level: LevelNavbarCategory}
	}
	if product.Category.Slug != requested.Category {
		return &HierarchyError{Reason: ReasonSlugMismatch, Level: LevelCategory}
	}
	if product.Subcategory.Slug != requested.Subcategory {
		return &HierarchyError{Reason: ReasonSlugMismatch, Level: LevelSubcategory}
	}

	// Drift check: the denormalized references must agree with the chain
	// reachable through the subcategory, independent of what the caller
	// requested. A product whose requested-path slugs all match can still
	// be re-categorized under the hood.
	chain := product.Subcategory.Category
	if chain.NavbarCategory.ID != product.NavbarCategory.ID || chain.ID != product.Category.ID {
		return &HierarchyError{Reason: ReasonHierarchyDrift}
	}
	return nil
}
