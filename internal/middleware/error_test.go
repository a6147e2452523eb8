package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "assetledger/internal/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"app_error", apperrors.ErrAssetNotFound, http.StatusNotFound, "ASSET_NOT_FOUND", ""},
		{"field_errors", apperrors.WithFields(apperrors.ErrValidation, map[string]string{"value": "Ensure this value is greater than or equal to 0."}), http.StatusBadRequest, "VALIDATION_ERROR", "value"},
		{"wrapped_internal", apperrors.Wrap(apperrors.ErrInternalServer, errors.New("disk gone")), http.StatusInternalServerError, "INTERNAL_ERROR", ""},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/test", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			errObj := parseBody(t, rec)["error"].(map[string]interface{})
			if errObj["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", errObj["code"], tt.wantCode)
			}
			if errObj["message"] == "disk gone" || errObj["message"] == "boom" {
				t.Error("internal cause must not leak")
			}
			if tt.wantField != "" {
				fields, _ := errObj["fields"].(map[string]interface{})
				if fields[tt.wantField] == nil {
					t.Errorf("expected field %q in %v", tt.wantField, errObj)
				}
			}
		})
	}
}
