package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
	availability service.AvailabilityService
}

func NewReservationHandler(reservations service.ReservationService, availability service.AvailabilityService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, availability: availability}
}

func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, apperrors.Validation("dates must be YYYY-MM-DD"))
		return
	}

	report, err := h.availability.CheckOverlap(r.Context(), req.AssetID, start, end, req.ExcludeReservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailabilityResponse(report))
}

func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, apperrors.Validation("dates must be YYYY-MM-DD"))
		return
	}

	quote, err := h.reservations.Quote(r.Context(), req.AssetID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuoteResponse{
		TotalCents: quote.TotalCents,
		Breakdown:  quote.Breakdown,
		Days:       quote.Months*30 + quote.Weeks*7 + quote.Days,
	})
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, apperrors.Validation("dates must be YYYY-MM-DD"))
		return
	}

	res, err := h.reservations.CreateBooking(r.Context(), service.BookingRequest{
		AssetID:            req.AssetID,
		CustomerID:         req.CustomerID,
		StartDate:          start,
		EndDate:            end,
		Notes:              req.Notes,
		PriceOverrideCents: req.PriceOverrideCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	res, err := h.reservations.GetByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req UpdateReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, apperrors.Validation("dates must be YYYY-MM-DD"))
		return
	}

	res, err := h.reservations.UpdateBooking(r.Context(), code, start, end, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Transition(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req TransitionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.reservations.TransitionStatus(r.Context(), code, domain.ReservationStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	res, err := h.reservations.CancelBooking(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) OverridePrice(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req OverridePriceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.reservations.OverridePrice(r.Context(), code, req.TotalCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) ListByAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	reservations, err := h.reservations.ListByAsset(r.Context(), assetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid id in path")
	}
	return int32(id), nil
}
