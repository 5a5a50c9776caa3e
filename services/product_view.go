package services

import "github.com/huawei-ekit/catalog_backend/models"

// ProjectProduct flattens a validated product graph into the view handed
// to rendering and metadata layers. The product must already have passed
// hierarchy validation, so the three expanded ancestors are non-nil.
func ProjectProduct(product *models.ProductWithHierarchy) *models.FlatProductView {
	return &models.FlatProductView{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		KeyFeatures: append([]string(nil), product.KeyFeatures...),
		Image1:      product.Image1,
		Image2:      optionalImage(product.Image2),
		Image3:      optionalImage(product.Image3),
		Image4:      optionalImage(product.Image4),
		NavbarCategory: models.AncestorRef{
			Name: product.NavbarCategory.Name,
			Slug: product.NavbarCategory.Slug,
		},
		Category: models.AncestorRef{
			Name: product.Category.Name,
			Slug: product.Category.Slug,
		},
		Subcategory: models.AncestorRef{
			Name: product.Subcategory.Name,
			Slug: product.Subcategory.Slug,
		},
	}
}

// optionalImage normalizes an optional image to present-with-value or
// absent; an empty string counts as absent.
func optionalImage(image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	value := *image
	return &value
}
