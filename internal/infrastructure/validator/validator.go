package validator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxObjectPKLength = 255

var typeTagPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register adds the like-route validations to v.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("typetag", typeTagFL)
	_ = v.RegisterValidation("objectpk", objectPKFL)
}

// ValidTypeTag reports whether s is "app.model" or a bare "model".
func ValidTypeTag(s string) bool {
	return typeTagPattern.MatchString(s)
}

// ValidObjectPK reports whether s can be used as an opaque primary key.
func ValidObjectPK(s string) bool {
	if s == "" || len(s) > maxObjectPKLength || strings.TrimSpace(s) != s {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func typeTagFL(fl validator.FieldLevel) bool {
	return ValidTypeTag(fl.Field().String())
}

func objectPKFL(fl validator.FieldLevel) bool {
	return ValidObjectPK(fl.Field().String())
}
