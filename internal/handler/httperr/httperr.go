package httperr

import (
	"net/http"

	"booking-pricing/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// Rule maps errors marked with Target to a public status and message.
type Rule struct {
	Target  error
	Status  int
	Message string
	// ExposeCause puts err.Error() in the response detail.
	ExposeCause bool
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithMappedError aborts with the first rule whose target err is marked with.
// Unmatched errors become 500 without detail.
func AbortWithMappedError(c *gin.Context, err error, rules []Rule) {
	for _, r := range rules {
		if !errs.Is(err, r.Target) {
			continue
		}
		var detail any
		if r.ExposeCause {
			detail = err.Error()
		}
		AbortWithError(c, r.Status, err, r.Message, detail)
		return
	}
	AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
}
