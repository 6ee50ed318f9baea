package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/splax/localvercel/accounts/internal/controller"
	"github.com/splax/localvercel/accounts/internal/domain"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEnvelope serializes a controller Response. Password hashes never
// leave the process.
func writeEnvelope(w http.ResponseWriter, res controller.Response) {
	writeJSON(w, res.StatusCode, MarshalBody(res.Body))
}

// MarshalBody maps a Response body to its wire shape: {name, message} for
// errors and the account without its password hash.
func MarshalBody(body any) any {
	switch v := body.(type) {
	case *controller.Error:
		return map[string]string{"name": v.Name(), "message": v.Error()}
	case *domain.Account:
		return marshalAccount(v)
	case nil:
		return map[string]any{}
	default:
		return v
	}
}

func marshalAccount(a *domain.Account) map[string]any {
	payload := map[string]any{
		"id":    a.ID,
		"name":  a.Name,
		"email": a.Email,
	}
	if !a.CreatedAt.IsZero() {
		payload["created_at"] = a.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return payload
}
