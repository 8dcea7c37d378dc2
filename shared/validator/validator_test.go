package validator_test

import (
	"roomform/shared/failure"
	"roomform/shared/validator"
	"strings"
	"testing"

	val "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Name     string `json:"name"     validate:"required,min=4"`
	Email    string `json:"email"    validate:"required,email"`
	Category string `json:"category" validate:"oneof=user admin guest"`
	Note     string `json:"note"     validate:"empty"`
	Colour   string `json:"colour"   validate:"omitempty,palette"`
}

func init() {
	err := validator.RegisterValidation("palette", func(fl val.FieldLevel) bool {
		return fl.Field().String() == "red" || fl.Field().String() == "blue"
	}, failure.KindInvalidEnum, "{field} must be a palette colour")
	if err != nil {
		panic(err)
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        testRequest
		expectError bool
	}{
		{
			name:        "valid struct",
			data:        testRequest{Name: "John Doe", Email: "john@example.com", Category: "user"},
			expectError: false,
		},
		{
			name:        "missing required field",
			data:        testRequest{Email: "john@example.com", Category: "user"},
			expectError: true,
		},
		{
			name:        "invalid email",
			data:        testRequest{Name: "John Doe", Email: "invalid-email", Category: "user"},
			expectError: true,
		},
		{
			name:        "invalid category",
			data:        testRequest{Name: "John Doe", Email: "john@example.com", Category: "invalid"},
			expectError: true,
		},
		{
			name:        "non empty note",
			data:        testRequest{Name: "John Doe", Email: "john@example.com", Category: "user", Note: "x"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFields_ReportsEveryField(t *testing.T) {
	data := testRequest{
		Name:     "Ann",
		Email:    "invalid",
		Category: "root",
		Note:     "x",
		Colour:   "green",
	}

	fields := validator.ValidateFields(&data)
	require.Len(t, fields, 5)

	assert.Equal(t, failure.KindTooShort, fields["name"].Kind)
	assert.Equal(t, "name must be at least 4 characters", fields["name"].Message)
	assert.Equal(t, failure.KindInvalidFormat, fields["email"].Kind)
	assert.Equal(t, failure.KindInvalidEnum, fields["category"].Kind)
	assert.Equal(t, failure.KindInvalidDependent, fields["note"].Kind)
	assert.Equal(t, failure.KindInvalidEnum, fields["colour"].Kind)
	assert.Equal(t, "colour must be a palette colour", fields["colour"].Message)
}

func TestValidateFields_RequiredWinsOverFormat(t *testing.T) {
	data := testRequest{Name: "John Doe", Category: "user"}

	fields := validator.ValidateFields(&data)
	require.Contains(t, fields, "email")
	assert.Equal(t, failure.KindMissingField, fields["email"].Kind)
}

func TestValidateFields_Valid(t *testing.T) {
	data := testRequest{Name: "John Doe", Email: "john@example.com", Category: "admin", Colour: "red"}

	assert.Nil(t, validator.ValidateFields(&data))
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required", expectError: false},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid email", field: "test@example.com", tag: "email", expectError: false},
		{name: "invalid email", field: "invalid-email", tag: "email", expectError: true},
		{name: "empty passes empty", field: "", tag: "empty", expectError: false},
		{name: "value fails empty", field: "x", tag: "empty", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"John Doe","email":"john@example.com","category":"user"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			jsonBody:    `{"name":"John Doe","email":"invalid-email","category":"user"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"John Doe","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data testRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&testRequest{})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "required")
}
