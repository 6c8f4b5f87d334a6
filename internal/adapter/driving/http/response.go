package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/passop/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"` + msgInternalServer + `"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeMessage writes a {"message": ...} body with the given status code.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// MessageResponse is the body of error responses and of a successful update.
type MessageResponse struct {
	Message string `json:"message"`
}

// CredentialRequest is the JSON body of create, update and delete requests.
// ID is optional and narrows update and delete to one record.
type CredentialRequest struct {
	ID       string `json:"_id,omitempty"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r CredentialRequest) toCredential() model.Credential {
	return model.Credential{
		Site:     r.Site,
		Username: r.Username,
		Password: r.Password,
	}
}

func (r CredentialRequest) key() model.CredentialKey {
	return model.CredentialKey{ID: r.ID, Site: r.Site, Username: r.Username}
}

// CredentialResponse is the JSON representation of a stored credential.
type CredentialResponse struct {
	ID       string `json:"_id"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateResponse acknowledges a create.
type CreateResponse struct {
	Success bool                 `json:"success"`
	Result  InsertResultResponse `json:"result"`
}

// InsertResultResponse is the outcome of the insert, in the shape of a
// document-store insert acknowledgement.
type InsertResultResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// DeleteResponse is the body of delete responses.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toCredentialResponse converts a domain Credential to its JSON representation.
func toCredentialResponse(c model.Credential) CredentialResponse {
	return CredentialResponse{
		ID:       c.ID,
		Site:     c.Site,
		Username: c.Username,
		Password: c.Password,
	}
}
