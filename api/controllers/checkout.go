package controllers

import (
	"net/http"

	"github.com/jeansstore/backend/api/middleware"
	"github.com/jeansstore/backend/api/responses"
	"github.com/jeansstore/backend/api/validators"
	checkoutsvc "github.com/jeansstore/backend/internal/checkout"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
	"github.com/jeansstore/backend/pkg/logger"
)

type lookupRequest struct {
	CEP string `json:"cep" validate:"required"`
}

type updateCheckoutRequest struct {
	DeliveryOption *string `json:"delivery_option,omitempty" validate:"omitempty,oneof=economic standard express"`
	PaymentMethod  *string `json:"payment_method,omitempty" validate:"omitempty,oneof=credit debit pix"`
	Customer       *struct {
		Name       *string `json:"name,omitempty"`
		Email      *string `json:"email,omitempty" validate:"omitempty,email"`
		Phone      *string `json:"phone,omitempty"`
		Number     *string `json:"number,omitempty"`
		Complement *string `json:"complement,omitempty"`
	} `json:"customer,omitempty"`
}

// GetCheckout returns the session's wizard state.
func GetCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		state, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// CheckoutLookup resolves the submitted postal code and advances the wizard.
func CheckoutLookup(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload lookupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Lookup(r.Context(), sessionID, payload.CEP)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// UpdateCheckout applies delivery, payment, and customer selections.
func UpdateCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload updateCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.UpdateInput{
			DeliveryOption: payload.DeliveryOption,
			PaymentMethod:  payload.PaymentMethod,
		}
		if payload.Customer != nil {
			input.Customer = &checkoutsvc.CustomerInput{
				Name:       payload.Customer.Name,
				Email:      payload.Customer.Email,
				Phone:      payload.Customer.Phone,
				Number:     payload.Customer.Number,
				Complement: payload.Customer.Complement,
			}
		}

		state, err := svc.Update(r.Context(), sessionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// CheckoutBack returns the wizard to the address step.
func CheckoutBack(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		state, err := svc.Back(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// FinishCheckout completes the order and resets the wizard.
func FinishCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		result, err := svc.Finish(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
