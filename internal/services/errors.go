package services

import (
	"errors"
	"strconv"

	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/source"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// Dashboard service errors
var (
	// Fatal: nothing can be rendered
	ErrSourceUnavailable = source.ErrSourceUnavailable

	// Recoverable: only the selected workshop view fails
	ErrWorkshopColumnNotFound = survey.ErrWorkshopColumnNotFound

	ErrUnknownWorkshop = survey.ErrUnknownWorkshop
)

// AsAPIError maps a pipeline error onto the API error rendered to clients.
// Errors it does not recognize are returned unchanged.
func AsAPIError(err error, workshop string) error {
	if err == nil {
		return nil
	}

	var notFound *survey.ColumnNotFoundError
	switch {
	case errors.As(err, &notFound):
		return apierrors.WorkshopColumnNotFound(notFound.Workshop, notFound.Candidates, err)
	case errors.Is(err, ErrUnknownWorkshop):
		return apierrors.UnknownWorkshop(workshop, err)
	case errors.Is(err, ErrSourceUnavailable):
		return apierrors.SourceUnavailable(err)
	case errors.Is(err, survey.ErrEmptyTable):
		return apierrors.SourceUnavailable(err)
	}
	return err
}

// WorkshopParam formats a workshop number the way URLs carry it.
func WorkshopParam(workshop int) string {
	if workshop == 0 {
		return "todos"
	}
	return strconv.Itoa(workshop)
}
