package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/speaktime/speaktime-api/internal/httputil"
	"github.com/speaktime/speaktime-api/internal/middleware"
	"github.com/speaktime/speaktime-api/internal/model"
)

// decodeJSON decodes the request body into dst, answering 400 on malformed
// input. It reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

// pathID extracts the {id} URL parameter. A malformed ObjectID cannot name
// any stored document, so it is answered as not-found.
func pathID(w http.ResponseWriter, r *http.Request, notFoundMessage string) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		httputil.RespondError(w, notFoundMessage, http.StatusNotFound)
		return "", false
	}

	return id, true
}

// identity returns the user attached by the authentication guard. Absence
// should be unreachable behind the guard; answered defensively with 401.
func identity(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "token missing", http.StatusUnauthorized)
		return nil, false
	}

	return user, true
}
