package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
}

type ratingReq struct {
	Rating *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, ValidateStruct(signupReq{Email: "reader@example.com", Password: "Readme123!"}))
	})

	t.Run("uses json field names", func(t *testing.T) {
		details := ValidateStruct(signupReq{})
		require.Len(t, details, 2)
		assert.Equal(t, "email", details[0].Field)
		assert.Equal(t, "email is required", details[0].Message)
		assert.Equal(t, "password", details[1].Field)
	})

	t.Run("bad email and weak password", func(t *testing.T) {
		details := ValidateStruct(signupReq{Email: "nope", Password: "weak"})
		require.Len(t, details, 2)
		assert.Equal(t, "email must be a valid email address", details[0].Message)
		assert.Contains(t, details[1].Message, "at least 8 characters")
	})

	t.Run("range", func(t *testing.T) {
		bad := 7.0
		details := ValidateStruct(ratingReq{Rating: &bad})
		require.Len(t, details, 1)
		assert.Equal(t, "rating", details[0].Field)

		ok := 4.0
		assert.Nil(t, ValidateStruct(ratingReq{Rating: &ok}))
		assert.Nil(t, ValidateStruct(ratingReq{}))
	})
}
