package validator

import (
	"errors"
	"roomform/shared/failure"
	"strings"
	"sync"

	val "github.com/go-playground/validator/v10"
)

var (
	mu       sync.RWMutex
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param} characters",
		"min":      "{field} must be at least {param} characters",
		"email":    "{field} must be a valid email address",
		"empty":    "{field} must be empty",
	}
	kinds = map[string]failure.Kind{
		"required": failure.KindMissingField,
		"oneof":    failure.KindInvalidEnum,
		"min":      failure.KindTooShort,
		"email":    failure.KindInvalidFormat,
		"empty":    failure.KindInvalidDependent,
	}
)

func register(tag string, kind failure.Kind, template string) {
	mu.Lock()
	defer mu.Unlock()

	kinds[tag] = kind
	messages[tag] = template
}

func render(valErr val.FieldError) string {
	mu.RLock()
	errStr := messages[valErr.Tag()]
	mu.RUnlock()

	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

func kind(valErr val.FieldError) failure.Kind {
	mu.RLock()
	defer mu.RUnlock()

	if k, ok := kinds[valErr.Tag()]; ok {
		return k
	}

	return failure.KindInvalidFormat
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			return render(valErr)
		}

		return valErrors.Error()
	}

	return err.Error()
}
