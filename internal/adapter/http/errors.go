package http

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// toHumaError translates domain errors to Huma HTTP errors. Cross-tenant
// reads already surface as not-found in the services, so a 404 here never
// leaks another tenant's data.
func toHumaError(err error) error {
	var humaErr huma.StatusError
	if errors.As(err, &humaErr) {
		return humaErr
	}

	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return huma.Error404NotFound("company not found")
	case errors.Is(err, domain.ErrOperatorNotFound):
		return huma.Error404NotFound("operator not found")
	case errors.Is(err, domain.ErrRegisterNotFound):
		return huma.Error404NotFound("cash register not found")
	case errors.Is(err, domain.ErrSessionNotFound):
		return huma.Error404NotFound("session not found")
	case errors.Is(err, domain.ErrCustomerNotFound):
		return huma.Error404NotFound("customer not found")
	case errors.Is(err, domain.ErrProductNotFound):
		return huma.Error404NotFound("product not found")
	case errors.Is(err, domain.ErrSaleNotFound):
		return huma.Error404NotFound("sale not found")
	case errors.Is(err, domain.ErrSaleItemNotFound):
		return huma.Error404NotFound("sale item not found")
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return huma.Error404NotFound("invoice not found")
	case errors.Is(err, domain.ErrRegisterInactive):
		return huma.Error422UnprocessableEntity("cash register is inactive")
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error400BadRequest(valErr.Error())
	}

	var forbiddenErr *domain.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		return huma.Error403Forbidden(forbiddenErr.Error())
	}

	var openErr *domain.SessionAlreadyOpenError
	if errors.As(err, &openErr) {
		return huma.Error409Conflict(openErr.Error())
	}

	var closedErr *domain.SessionClosedError
	if errors.As(err, &closedErr) {
		return huma.Error409Conflict(closedErr.Error())
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return huma.Error409Conflict(stockErr.Error())
	}

	var dupErr *domain.DuplicateError
	if errors.As(err, &dupErr) {
		return huma.Error409Conflict(dupErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
