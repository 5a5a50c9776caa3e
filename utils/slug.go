package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsValidSlug reports whether s is a URL-safe slug: lowercase
// alphanumeric runs separated by single hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// RegisterSlugValidation wires the catalogslug rule into the request
// validator so path-parameter structs can declare it in tags.
func RegisterSlugValidation(v *validator.Validate) error {
	return v.RegisterValidation("catalogslug", func(fl validator.FieldLevel) bool {
		return IsValidSlug(fl.Field().String())
	})
}
