package middleware

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/jwalitptl/clinic-registry/pkg/validator"
)

var registerTagNames sync.Once

// UseJSONFieldNames makes gin's binding validator report fields by their
// json names, so error messages match the request body.
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(pkgvalidator.JSONFieldName)
		}
	})
}
