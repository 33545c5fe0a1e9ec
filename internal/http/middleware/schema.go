package middleware

import (
	"bytes"
	"io"

	apperrors "cna-backend/internal/common/errors"
	"cna-backend/internal/common/validation"
	"cna-backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 1 << 20

// ValidateBody rejects requests whose JSON body does not satisfy the named
// request schema. The body is restored for the handler.
func ValidateBody(schema string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
		if err != nil {
			response.AbortWithStandardError(c, apperrors.NewInvalidRequestError("unreadable body"), false)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		result, err := validation.ValidateRequest(schema, body)
		if err != nil {
			response.AbortWithStandardError(c, apperrors.NewInvalidRequestError(err.Error()), false)
			return
		}
		if !result.Valid {
			response.AbortWithStandardError(c, apperrors.NewInvalidRequestError(result.Summary()), false)
			return
		}
		c.Next()
	}
}
