package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanvir-dev/versebook/backend/internal/models"
)

func TestValidatePassesValidRequest(t *testing.T) {
	v := NewValidator()
	err := v.Validate(models.SignupRequest{
		Username: "rumi",
		Email:    "rumi@example.com",
		Password: "longenough",
	})
	assert.NoError(t, err)
}

func TestValidateRejectsInvalidRequest(t *testing.T) {
	v := NewValidator()
	err := v.Validate(models.SignupRequest{
		Username: "r", // below min length
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
