package handler

import "net/http"

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body CreateUserRequest
	if !bind(w, r, &body) {
		return
	}

	user, err := s.users.Create(r.Context(), body.Email)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(user))
}

// GetUser handles GET /users/{userID}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}
