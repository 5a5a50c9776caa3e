package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the leaf of the catalog hierarchy. It carries three
// independent ancestor references: subcategory is the immediate parent,
// category and navbarCategory are denormalized copies kept for query
// convenience. The copies can drift from the real chain; the hierarchy
// validator exists to catch that.
type Product struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Slug           string             `json:"slug" bson:"slug"`
	Description    string             `json:"description" bson:"description"`
	KeyFeatures    []string           `json:"keyFeatures" bson:"keyFeatures"`
	Image1         string             `json:"image1" bson:"image1"`
	Image2         *string            `json:"image2,omitempty" bson:"image2,omitempty"`
	Image3         *string            `json:"image3,omitempty" bson:"image3,omitempty"`
	Image4         *string            `json:"image4,omitempty" bson:"image4,omitempty"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	NavbarCategory primitive.ObjectID `json:"navbarCategory" bson:"navbarCategory"`
	Category       primitive.ObjectID `json:"category" bson:"category"`
	Subcategory    primitive.ObjectID `json:"subcategory" bson:"subcategory"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductWithHierarchy is the shape a product takes after hierarchy
// expansion: the three ancestor references resolved into documents, and
// the subcategory additionally carrying its own category and
// navbarCategory chain.
type ProductWithHierarchy struct {
	ID             primitive.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string                `json:"name" bson:"name"`
	Slug           string                `json:"slug" bson:"slug"`
	Description    string                `json:"description" bson:"description"`
	KeyFeatures    []string              `json:"keyFeatures" bson:"keyFeatures"`
	Image1         string                `json:"image1" bson:"image1"`
	Image2         *string               `json:"image2,omitempty" bson:"image2,omitempty"`
	Image3         *string               `json:"image3,omitempty" bson:"image3,omitempty"`
	Image4         *string               `json:"image4,omitempty" bson:"image4,omitempty"`
	IsActive       bool                  `json:"isActive" bson:"isActive"`
	NavbarCategory *NavbarCategory       `json:"navbarCategory,omitempty" bson:"navbarCategory,omitempty"`
	Category       *Category             `json:"category,omitempty" bson:"category,omitempty"`
	Subcategory    *SubcategoryWithChain `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	CreatedAt      time.Time             `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt" bson:"updatedAt"`
}

// AncestorRef is a name/slug pair lifted from an expanded ancestor.
type AncestorRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FlatProductView is the serialization-safe projection handed to the
// rendering and metadata layers. It contains string identifiers only,
// never live references or driver types. Optional images are nil when
// absent.
type FlatProductView struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Description    string      `json:"description"`
	KeyFeatures    []string    `json:"keyFeatures"`
	Image1         string      `json:"image1"`
	Image2         *string     `json:"image2,omitempty"`
	Image3         *string     `json:"image3,omitempty"`
	Image4         *string     `json:"image4,omitempty"`
	NavbarCategory AncestorRef `json:"navbarCategory"`
	Category       AncestorRef `json:"category"`
	Subcategory    AncestorRef `json:"subcategory"`
}
