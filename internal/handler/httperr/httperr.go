package httperr

import (
	"net/http"

	"library-lending/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const InternalMessage = "Internal server error"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = codeFor(status, err)
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort answers with the status that matches err's kind. Internal failures never leak their message.
func Abort(c *gin.Context, err error) {
	resp := FromError(err)
	AbortWithError(c, resp.Status, err, resp.Error.Message, nil)
}

// FromError builds the response body for err from its kind.
func FromError(err error) Response {
	kind := errs.KindOf(err)
	resp := Response{Status: StatusFor(kind)}
	resp.Error.Code = string(kind)
	resp.Error.Message = InternalMessage
	if kind != errs.KindInternal {
		resp.Error.Message = err.Error()
	}
	return resp
}

func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindOutOfStock, errs.KindDuplicateIsbn, errs.KindConcurrencyConflict, errs.KindConflictExhausted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int, err error) string {
	if kind := errs.KindOf(err); kind != errs.KindInternal || status >= http.StatusInternalServerError {
		return string(kind)
	}
	// binding and path errors are unclassified but still the caller's fault
	if status == http.StatusBadRequest {
		return string(errs.KindValidation)
	}
	return ""
}
