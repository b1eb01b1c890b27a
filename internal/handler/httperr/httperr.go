package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"court-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLogLines = 12

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Rule    string `json:"rule,omitempty"`
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
	resp.Detail = detail
	if rule, ok := errs.RuleOf(err); ok {
		resp.Error.Rule = rule.Rule
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusFor maps an error category to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPolicyViolation):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Respond aborts with the status of err's category. Rule violations report
// their own message; anything uncategorized is hidden behind fallback.
func Respond(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Unhandled error",
			"path", c.Request.URL.Path,
			"error", err,
			"stack", errs.StackLines(err, stackLogLines),
		)
		AbortWithError(c, status, err, fallback, nil)
		return
	}
	msg := err.Error()
	if rule, ok := errs.RuleOf(err); ok {
		msg = rule.Message
	}
	AbortWithError(c, status, err, msg, nil)
}
