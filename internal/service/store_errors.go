package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/fleetops/fleet-logistics-api/pkg/errors"
)

// validationError shapes a validator failure into the validation taxonomy,
// attaching one detail line per failed field.
func validationError(err error, message string) *appErrors.Error {
	appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErr
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s failed on the %s rule", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return appErrors.WithDetails(appErr, details...)
}

// mapStoreError classifies persistence failures: deadline/cancellation means
// the outcome is unknown and the whole operation may be retried by the
// caller; anything else is internal.
func mapStoreError(err error, message string) *appErrors.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return appErrors.Wrap(err, appErrors.ErrTransient.Code, appErrors.ErrTransient.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
