// Package validation wraps a shared go-playground validator for request bodies.
package validation

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates s and returns the name of the first failing field, or "" and nil.
func Struct(s any) (field string, err error) {
	err = instance().Struct(s)
	if err == nil {
		return "", nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), err
	}
	return "", err
}
