package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk/internal/logger"
)

// NewRouter wires every handler onto the shared mux router.
func NewRouter(reservations *ReservationHandler, assets *AssetHandler, sync *SyncHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogging)

	r.HandleFunc("/api/availability", reservations.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/quotes", reservations.Quote).Methods("POST")

	r.HandleFunc("/api/reservations", reservations.Create).Methods("POST")
	r.HandleFunc("/api/reservations/{code}", reservations.Get).Methods("GET")
	r.HandleFunc("/api/reservations/{code}", reservations.Update).Methods("PUT")
	r.HandleFunc("/api/reservations/{code}", reservations.Cancel).Methods("DELETE")
	r.HandleFunc("/api/reservations/{code}/status", reservations.Transition).Methods("POST")
	r.HandleFunc("/api/reservations/{code}/price", reservations.OverridePrice).Methods("POST")

	r.HandleFunc("/api/assets", assets.Create).Methods("POST")
	r.HandleFunc("/api/assets", assets.List).Methods("GET")
	r.HandleFunc("/api/assets/{id}", assets.Get).Methods("GET")
	r.HandleFunc("/api/assets/{id}/reservations", reservations.ListByAsset).Methods("GET")
	r.HandleFunc("/api/assets/{id}/calendar.ics", assets.Calendar).Methods("GET")
	r.HandleFunc("/api/assets/{id}/sync", sync.SyncAsset).Methods("POST")

	r.HandleFunc("/api/customers", assets.CreateCustomer).Methods("POST")

	r.HandleFunc("/api/feed/preview", sync.PreviewFeed).Methods("POST")

	return r
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
