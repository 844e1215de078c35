package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vendorBody struct {
	Name      string `json:"name" binding:"required,max=10"`
	Email     string `json:"email" binding:"omitempty,email"`
	GSTNumber string `json:"gst_number" binding:"gst"`
}

func TestSetupValidator(t *testing.T) {
	require.NoError(t, SetupValidator())

	r := gin.New()
	r.Use(RequestID())
	r.POST("/", func(c *gin.Context) {
		var body vendorBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return w
	}

	t.Run("valid GSTIN in lower case", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post(`{"name":"Acme","gst_number":"27aapfu0939f1zv"}`).Code)
	})

	t.Run("empty GSTIN", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post(`{"name":"Acme"}`).Code)
	})

	t.Run("field errors use json names", func(t *testing.T) {
		w := post(`{"name":"","email":"nope","gst_number":"12345"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required", fields["name"])
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "Must be a 15 character GSTIN", fields["gst_number"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w := post(`{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decode(t, w).Error.Code)
	})
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(errors.New("boom"), "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
