package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/gin-gonic/gin"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"record not found", utils.ErrorRecordNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get vendor order: %w", utils.ErrorRecordNotFound), http.StatusNotFound},
		{"insufficient stock", utils.ErrorInsufficientStock, http.StatusBadRequest},
		{"insufficient reserved", utils.ErrorInsufficientReserved, http.StatusBadRequest},
		{"validation", utils.NewValidationError("quantity", "must be positive"), http.StatusBadRequest},
		{"state", utils.NewStateError("order is not PENDING"), http.StatusBadRequest},
		{"conflict", utils.NewConflictError("duplicate name"), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tc.err)
			if w.Code != tc.want {
				t.Fatalf("status: want %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestParamIdRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, raw := range []string{"abc", "0", "-4", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		if _, err := paramId(c); !utils.IsValidationError(err) {
			t.Fatalf("paramId(%q): want ValidationError, got %v", raw, err)
		}
	}
}
