package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/api/responses"
	"github.com/dcontreras/mueblesrent-backend/api/validators"
	"github.com/dcontreras/mueblesrent-backend/internal/pricing"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
	"github.com/dcontreras/mueblesrent-backend/pkg/logger"
)

type quoteItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type createQuoteRequest struct {
	StartDate string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string             `json:"end_date" validate:"required,datetime=2006-01-02"`
	Items     []quoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateQuote prices a prospective rental without holding inventory.
func CreateQuote(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload createQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := pricing.QuoteInput{
			StartDate: payload.StartDate,
			EndDate:   payload.EndDate,
			Items:     make([]pricing.QuoteItemInput, 0, len(payload.Items)),
		}
		for _, item := range payload.Items {
			id, err := uuid.Parse(item.ProductID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			input.Items = append(input.Items, pricing.QuoteItemInput{ProductID: id, Quantity: item.Quantity})
		}

		quote, err := svc.GenerateQuote(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
