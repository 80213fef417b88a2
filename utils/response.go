// utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agenda-backend/apperrors"
)

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RespondWithDomainError maps the error taxonomy onto HTTP status codes so
// the client can show a message and retry the same action.
func RespondWithDomainError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		timezoneErr   *apperrors.TimezoneError
		storeErr      *apperrors.StoreError
		publishErr    *apperrors.PublishError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(c, http.StatusBadRequest, validationErr.Msg)
	case errors.As(err, &notFoundErr):
		RespondWithError(c, http.StatusNotFound, notFoundErr.Msg)
	case errors.As(err, &timezoneErr):
		RespondWithError(c, http.StatusUnprocessableEntity, timezoneErr.Msg)
	case errors.As(err, &storeErr), errors.As(err, &publishErr):
		RespondWithError(c, http.StatusBadGateway, err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
