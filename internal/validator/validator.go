// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"stockfinder/internal/services"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(validateRange, services.Range{})
	}
}

// validateRange rejects inverted range filters at binding time. Min==Max is
// a valid single-point filter and passes.
func validateRange(sl validator.StructLevel) {
	r := sl.Current().Interface().(services.Range)
	if r.Min > r.Max {
		sl.ReportError(r.Max, "Max", "max", "gtefield", "Min")
	}
}
