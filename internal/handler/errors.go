// Package handler holds what the api and web handlers share.
package handler

import (
	"errors"

	"GreeksBoard/internal/service/charts"
	"GreeksBoard/internal/service/credentials"
	"GreeksBoard/internal/service/sheets"
	"GreeksBoard/internal/usecase"
	xhttp "GreeksBoard/pkg/http"
)

// MapError converts a use case error into an AppError carrying the HTTP status.
func MapError(err error) *xhttp.AppError {
	var (
		missing *credentials.MissingError
		appErr  *xhttp.AppError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &missing):
		// the variable name is the whole message
		return xhttp.ServiceUnavailableError(missing.Error()).WithError(err)
	case errors.Is(err, credentials.ErrCredentialMalformed):
		return xhttp.BadGatewayError("service account credential is invalid").WithError(err)
	case errors.Is(err, sheets.ErrSpreadsheetNotFound):
		return xhttp.BadGatewayError("spreadsheet not found").WithError(err)
	case errors.Is(err, usecase.ErrSource):
		return xhttp.BadGatewayError("could not read data source").WithError(err)
	case errors.Is(err, usecase.ErrNoData):
		return xhttp.NotFoundError(usecase.MessageNoData).WithError(err)
	case errors.Is(err, usecase.ErrNoRows),
		errors.Is(err, usecase.ErrUnknownMetric),
		errors.Is(err, usecase.ErrNoColumns),
		errors.Is(err, charts.ErrNoPoints):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	}
	return xhttp.InternalError("something went wrong").WithError(err)
}
