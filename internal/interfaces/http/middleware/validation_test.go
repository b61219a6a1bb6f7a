package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type registerPayload struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Occupancy string `json:"occupancy" validate:"required,oneof='standalone owner' tenant"`
}

func TestValidationDetails(t *testing.T) {
	v := validator.New()

	t.Run("flattens field errors", func(t *testing.T) {
		err := v.Struct(registerPayload{Email: "not-an-email", Occupancy: "landlord"})
		assert.Error(t, err)

		details := ValidationDetails(err)
		assert.Contains(t, details, "this field is required")
		assert.Contains(t, details, "invalid email format")
		assert.Contains(t, details, "must be one of:")
	})

	t.Run("ignores non-validation errors", func(t *testing.T) {
		assert.Empty(t, ValidationDetails(errors.New("unexpected EOF")))
	})

	t.Run("valid payload produces no error", func(t *testing.T) {
		err := v.Struct(registerPayload{
			Name:      "Sana Tariq",
			Email:     "sana@example.com",
			Occupancy: "tenant",
		})
		assert.NoError(t, err)
	})
}
