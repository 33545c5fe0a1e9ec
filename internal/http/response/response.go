package response

import (
	"net/http"

	apperrors "cna-backend/internal/common/errors"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform error shape of every endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

// RespondStandardError writes err with the status chosen by the signaling mode.
func RespondStandardError(c *gin.Context, err *apperrors.StandardError, explicit bool) {
	RespondError(c, apperrors.HTTPStatus(err.Code, explicit), err.Message)
}

func AbortWithStandardError(c *gin.Context, err *apperrors.StandardError, explicit bool) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err.Code, explicit), ErrorBody{Error: err.Message})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
