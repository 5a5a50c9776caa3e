package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subcategory belongs to exactly one category. Its slug is unique within
// that category.
type Subcategory struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	Category  primitive.ObjectID `json:"category" bson:"category"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SubcategoryWithChain is a subcategory with its category reference
// resolved, and that category's navbarCategory resolved in turn. This is
// the live parent chain the hierarchy validator compares against the
// product's denormalized ancestor references.
type SubcategoryWithChain struct {
	ID       primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string              `json:"name" bson:"name"`
	Slug     string              `json:"slug" bson:"slug"`
	IsActive bool                `json:"isActive" bson:"isActive"`
	Category *CategoryWithNavbar `json:"category,omitempty" bson:"category,omitempty"`
}
