package middleware

import (
	"log/slog"
	"net/http"

	"library-lending/internal/handler/httperr"
	"library-lending/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the body for handlers that recorded an error without answering.
// Public errors carry their response in Meta; anything else is mapped by kind.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}

		last := c.Errors.Last()
		resp := httperr.FromError(last.Err)
		if resp.Status == http.StatusInternalServerError {
			slog.Error("unhandled request error",
				"error", last.Err.Error(),
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c))
		}
		c.JSON(resp.Status, resp)
	}
}

// NotFound answers unknown routes in the same error shape as the API.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusNotFound}
		resp.Error.Message = "route not found"
		resp.Error.Code = string(errs.KindNotFound)
		c.AbortWithStatusJSON(http.StatusNotFound, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c))

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = httperr.InternalMessage
				resp.Error.Code = string(errs.KindInternal)

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
