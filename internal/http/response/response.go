package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr maps err onto a status and code. Internal errors are not echoed.
func RespondErr(c *gin.Context, err error) {
	ae := Classify(err)
	if ae.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, ae.Status, ae.Code, errors.New(http.StatusText(ae.Status)))
		return
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

// Classify resolves err to an apierr.Error. An apierr already in the chain
// wins; domain sentinels and analysis failures map to fixed statuses.
func Classify(err error) *apierr.Error {
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return apierr.BadRequest("invalid_argument", err)
	case errors.Is(err, types.ErrNotFound):
		return apierr.NotFound("not_found", err)
	case errors.Is(err, types.ErrForbidden):
		return apierr.Forbidden("forbidden", err)
	case errors.Is(err, types.ErrAnalysisInProgress):
		return apierr.New(http.StatusConflict, "analysis_in_progress", err)
	}
	if af, ok := types.AsAnalysisFailure(err); ok {
		return apierr.New(FailureStatus(af), "analysis_"+string(af.Kind)+"_failed", err)
	}
	return apierr.Internal("internal", err)
}

// FailureStatus is 502 when the model produced nothing usable and 500 when
// our own write failed.
func FailureStatus(af *types.AnalysisFailure) int {
	if af == nil {
		return http.StatusInternalServerError
	}
	switch af.Kind {
	case types.FailureGeneration, types.FailureValidation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
