package kit

import (
	"encoding/json"
	"net/http"
)

// Messages shared by every handler built on the kit. The wording matches
// what the mobile client displays.
const (
	MsgBadRequest  = "requête invalide"
	MsgServerError = "erreur serveur"
	MsgNotReady    = "not ready"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"message": msg}. The request id is already on the
// X-Request-Id response header, so it stays out of the body.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteMessage(w, status, msg)
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, MessageResponse{Message: msg})
}
