package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/logger"
	"assetledger/internal/middleware"
	"assetledger/internal/services"
	"assetledger/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// getActor returns the authenticated user together with the client address
// recorded on activity entries.
func getActor(c *gin.Context) (services.Actor, error) {
	userID, err := getUserID(c)
	if err != nil {
		return services.Actor{}, err
	}
	// Forwarding headers only count when the peer is a configured trusted
	// proxy; see router.Deps.TrustedProxies.
	return services.Actor{UserID: userID, IPAddress: c.ClientIP()}, nil
}

// parsePathID reads a UUID path parameter. A malformed id cannot name an
// existing row, so it is reported as notFound.
func parsePathID(c *gin.Context, param string, notFound *apperrors.AppError) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", notFound
	}
	return id, nil
}

// bindError converts a binding failure into a response error. Tag failures
// become per-field messages; anything else is a malformed body.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			if _, exists := fields[fe.Field()]; !exists {
				fields[fe.Field()] = fieldMessage(fe)
			}
		}
		return apperrors.WithFields(apperrors.ErrValidation, fields)
	}
	if isTooLarge(err) {
		return uploadTooLarge()
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed request body")
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "asset_category", "area_unit", "gold_purity", "premium_frequency", "oneof":
		return "Select a valid choice."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	default:
		return "Enter a valid value."
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge)
}

func uploadTooLarge() error {
	return apperrors.WithFields(apperrors.ErrValidation, map[string]string{
		"files": "The upload exceeds the maximum request size.",
	})
}

// uploadedFiles returns the multipart "files" parts of a request. JSON
// requests carry no files.
func uploadedFiles(c *gin.Context) ([]services.FileUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		if isTooLarge(err) {
			return nil, uploadTooLarge()
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed multipart body")
	}

	headers := form.File["files"]
	files := make([]services.FileUpload, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, services.FileUpload{
			FileName: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and field errors.
// Otherwise it reports the unexpected error and returns a generic internal
// server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			if appErr.StatusCode >= http.StatusInternalServerError {
				logger.Fault(appErr.Message, appErr.Internal, "code", appErr.Code, "path", c.Request.URL.Path)
			} else {
				logger.Get().Warnw("app error",
					"code", appErr.Code,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
		}
		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		c.JSON(appErr.StatusCode, gin.H{"error": body})
		return
	}

	logger.Fault("unexpected error", err,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is returned by endpoints with nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}
