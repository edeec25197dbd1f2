package api

import (
	"net/http"

	"MarketIntel/internal/domain/errs"
	"MarketIntel/internal/service/metrics"
	xhttp "MarketIntel/pkg/http"
	applogger "MarketIntel/pkg/logger"

	"github.com/labstack/echo/v4"
)

// toAppError maps a domain error onto the HTTP error model. Unclassified and
// computation failures become a generic 500 that carries no internals.
func toAppError(err error) *xhttp.AppError {
	msg := errs.Message(err)
	switch errs.KindOf(err) {
	case errs.KindInvalidIdentifier:
		return xhttp.InvalidIDError(msg).WithError(err)
	case errs.KindNotFound:
		return xhttp.NotFoundError(msg).WithError(err)
	case errs.KindDegenerateInput:
		return xhttp.DegenerateInputError(msg).WithError(err)
	case errs.KindValidationFailure:
		return xhttp.ValidationFailedError(msg).WithError(err)
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}

// respondError logs server faults, counts the failure and writes the envelope.
func respondError(c echo.Context, l *applogger.Logger, endpoint string, err error) error {
	appErr := toAppError(err)
	kind := errs.KindOf(err)
	if endpoint != "" {
		metrics.AnalyticsErrors.WithLabelValues(endpoint, kind.String()).Inc()
	}
	if appErr.Status >= http.StatusInternalServerError {
		l.Error("request failed",
			applogger.String("endpoint", endpoint),
			applogger.String("kind", kind.String()),
			applogger.Error(err),
		)
	} else {
		l.Debug("request rejected",
			applogger.String("endpoint", endpoint),
			applogger.String("kind", kind.String()),
			applogger.String("reason", appErr.Message),
		)
	}
	return xhttp.AppErrorResponse(c, appErr)
}
