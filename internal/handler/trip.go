package handler

import (
	"net/http"

	"github.com/pkordes/stay-planner/internal/domain"
)

// CreateTrip handles POST /users/{userID}/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var body TripInput
	if !bind(w, r, &body) {
		return
	}
	body.ID = 0

	trip, err := body.toDomain()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	trip.UserID = userID

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /users/{userID}/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.ListPaged(r.Context(), userID, params)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	data := make([]TripJSON, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripPage{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /users/{userID}/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /users/{userID}/trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var body TripInput
	if !bind(w, r, &body) {
		return
	}
	body.ID = id

	trip, err := body.toDomain()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	trip.UserID = userID

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /users/{userID}/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
