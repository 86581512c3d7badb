package api

import (
	"net/http"

	"rentdesk/internal/domain"
	"rentdesk/internal/ical"
	"rentdesk/internal/repository"
)

type AssetHandler struct {
	assets       repository.AssetRepository
	reservations repository.ReservationRepository
	customers    repository.CustomerRepository
}

func NewAssetHandler(assets repository.AssetRepository, reservations repository.ReservationRepository, customers repository.CustomerRepository) *AssetHandler {
	return &AssetHandler{assets: assets, reservations: reservations, customers: customers}
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	asset := &domain.Asset{
		Kind:             domain.AssetKind(req.Kind),
		Name:             req.Name,
		Identifier:       req.Identifier,
		DailyRateCents:   req.DailyRateCents,
		WeeklyRateCents:  req.WeeklyRateCents,
		MonthlyRateCents: req.MonthlyRateCents,
		Status:           domain.AssetStatusAvailable,
		FeedURL:          req.FeedURL,
	}
	if err := h.assets.Create(r.Context(), asset); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assets.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	asset, err := h.assets.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// Calendar serves the asset's reservations as an ICS document, the outbound
// half of calendar sync.
func (h *AssetHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	asset, err := h.assets.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	reservations, err := h.reservations.ListByAsset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ical.BuildAssetCalendar(asset, reservations)))
}

func (h *AssetHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer := &domain.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := h.customers.Create(r.Context(), customer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}
