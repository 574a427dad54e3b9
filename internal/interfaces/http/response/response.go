package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "plateshare.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error to a transport response. Plain sentinel
// errors are classified by kind; anything unrecognized becomes a 500.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	if e, ok := err.(*domainerrors.AppError); ok {
		return e
	}

	kind := domainerrors.Kind(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		return domainerrors.InternalError(err)
	}
	return domainerrors.NewAppError(status, kind, err.Error(), err)
}

func statusForKind(kind string) int {
	switch kind {
	case domainerrors.CodeValidation:
		return http.StatusBadRequest
	case domainerrors.CodeNotFound:
		return http.StatusNotFound
	case domainerrors.CodeConflict, domainerrors.CodeState:
		return http.StatusConflict
	case domainerrors.CodeAuthorization:
		return http.StatusForbidden
	case domainerrors.CodeExpired:
		return http.StatusGone
	case domainerrors.CodeDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
