package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"roomform/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate *val.Validate

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}
}

// RegisterValidation adds a custom tag together with the error kind and message
// template ({field}, {param}) reported when it fails.
func RegisterValidation(tag string, fn val.Func, kind failure.Kind, template string) error {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("failed to register %q validation: %w", tag, err)
	}

	register(tag, kind, template)

	return nil
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// ValidateFields validates every field of data and returns one error per failing
// field, keyed by the field's json name. It returns nil when data is valid.
func ValidateFields[T any](data *T) failure.FieldErrors {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		log.Error().Err(err).Msg("struct could not be validated")

		return nil
	}

	fields := failure.FieldErrors{}
	for _, valErr := range valErrors {
		fields.Add(valErr.Field(), kind(valErr), render(valErr))
	}

	return fields
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
