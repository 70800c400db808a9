package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/api/responses"
	"github.com/dcontreras/mueblesrent-backend/api/validators"
	"github.com/dcontreras/mueblesrent-backend/internal/availability"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
	"github.com/dcontreras/mueblesrent-backend/pkg/logger"
)

// AvailabilityCheck answers a single-product availability probe.
func AvailabilityCheck(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		productID, err := validators.RequireQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start, err := validators.RequireQueryDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.RequireQueryDate(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Check(r.Context(), availability.CheckInput{
			ProductID: productID,
			Quantity:  quantity,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type availabilityCheckItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type availabilityCheckAllRequest struct {
	StartDate string                  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string                  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Items     []availabilityCheckItem `json:"items" validate:"required,min=1,dive"`
}

// AvailabilityCheckAll answers a multi-item availability probe.
func AvailabilityCheckAll(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		var payload availabilityCheckAllRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := availability.MultiCheckInput{
			StartDate: payload.StartDate,
			EndDate:   payload.EndDate,
			Items:     make([]availability.CheckInput, 0, len(payload.Items)),
		}
		for _, item := range payload.Items {
			id, err := uuid.Parse(item.ProductID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			input.Items = append(input.Items, availability.CheckInput{ProductID: id, Quantity: item.Quantity})
		}

		result, err := svc.CheckAll(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AvailabilityByDay renders the per-day supply picture for one product.
func AvailabilityByDay(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		productID, err := validators.RequireQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start, err := validators.RequireQueryDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.RequireQueryDate(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seq, err := svc.ByDay(r.Context(), productID, start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		days := []availability.DayAvailability{}
		for day := range seq {
			days = append(days, day)
		}
		responses.WriteSuccess(w, map[string]any{"product_id": productID, "days": days})
	}
}

// AvailabilityNextPeriod finds the earliest bookable window for a product.
func AvailabilityNextPeriod(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		productID, err := validators.RequireQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		days, err := validators.ParseQueryInt(r, "days", 1, 1, 365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		period, err := svc.FindNextPeriod(r.Context(), availability.NextPeriodInput{
			ProductID: productID,
			Quantity:  quantity,
			Days:      days,
			From:      from,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"found":  period != nil,
			"period": period,
		})
	}
}

// AvailabilityOccupancy summarizes per-product utilization over a range.
func AvailabilityOccupancy(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		start, err := validators.RequireQueryDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.RequireQueryDate(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Occupancy(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"start_date": start, "end_date": end, "products": summary})
	}
}
