package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category belongs to exactly one navbar category. Its slug is unique
// within that navbar category, not globally.
type Category struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Slug           string             `json:"slug" bson:"slug"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	Image          string             `json:"image,omitempty" bson:"image,omitempty"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	NavbarCategory primitive.ObjectID `json:"navbarCategory" bson:"navbarCategory"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NavbarCategoryWithCategories is the payload for a navbar category
// landing page: the navbar category plus its active categories, newest
// first.
type NavbarCategoryWithCategories struct {
	NavbarCategory NavbarCategory `json:"navbarCategory"`
	Categories     []Category     `json:"categories"`
}

// CategoryWithNavbar is a category as it appears inside an expanded
// subcategory chain, with its own navbarCategory reference resolved.
type CategoryWithNavbar struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Slug           string             `json:"slug" bson:"slug"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	NavbarCategory *NavbarCategory    `json:"navbarCategory,omitempty" bson:"navbarCategory,omitempty"`
}
