package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/passop/internal/domain/model"
)

// recordedRequest is what the test server saw.
type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, respBody string, got *recordedRequest) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &got.body))
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", WithHTTPClient(srv.Client()))
}

func TestNew_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultServerURL, New("").BaseURL())
	assert.Equal(t, "http://host:1", New("http://host:1///").BaseURL())
}

func TestClient_List(t *testing.T) {
	var got recordedRequest
	c := newTestServer(t, http.StatusOK,
		`[{"_id":"1","site":"a.com","username":"u","password":"p"}]`, &got)

	creds, err := c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/", got.path)
	assert.Equal(t, []model.Credential{{ID: "1", Site: "a.com", Username: "u", Password: "p"}}, creds)
}

func TestClient_ListError(t *testing.T) {
	var got recordedRequest
	c := newTestServer(t, http.StatusInternalServerError, `{"message":"Error fetching passwords"}`, &got)

	_, err := c.List(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Error fetching passwords", apiErr.Message)
}

func TestClient_Create(t *testing.T) {
	var got recordedRequest
	c := newTestServer(t, http.StatusOK,
		`{"success":true,"result":{"acknowledged":true,"insertedId":"new-id"}}`, &got)

	result, err := c.Create(context.Background(), model.Credential{ID: "ignored", Site: "a.com", Username: "u", Password: "p"})
	require.NoError(t, err)

	assert.Equal(t, "new-id", result.InsertedID)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, map[string]any{"site": "a.com", "username": "u", "password": "p"}, got.body)
}

func TestClient_UpdatePassword(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		respBody   string
		wantMsg    string
		wantErr    bool
		wantErrMsg string
	}{
		{
			name:     "updated",
			status:   http.StatusOK,
			respBody: `{"message":"Password updated successfully"}`,
			wantMsg:  "Password updated successfully",
		},
		{
			name:       "not updated",
			status:     http.StatusBadRequest,
			respBody:   `{"message":"Password not found or not updated"}`,
			wantErr:    true,
			wantErrMsg: "Password not found or not updated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got recordedRequest
			c := newTestServer(t, tt.status, tt.respBody, &got)

			key := model.CredentialKey{ID: "id-2", Site: "a.com", Username: "u"}
			msg, err := c.UpdatePassword(context.Background(), key, "new")

			assert.Equal(t, http.MethodPut, got.method)
			assert.Equal(t, "/password", got.path)
			assert.Equal(t, map[string]any{"_id": "id-2", "site": "a.com", "username": "u", "password": "new"}, got.body)

			if tt.wantErr {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantErrMsg, apiErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestClient_Delete(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		respBody     string
		wantErr      bool
		wantNotFound bool
	}{
		{name: "deleted", status: http.StatusOK, respBody: `{"success":true}`},
		{name: "not found", status: http.StatusNotFound, respBody: `{"success":false,"message":"Password not found"}`, wantErr: true, wantNotFound: true},
		{name: "invalid", status: http.StatusBadRequest, respBody: `{"message":"Invalid data"}`, wantErr: true},
		{name: "error without body", status: http.StatusBadGateway, respBody: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got recordedRequest
			c := newTestServer(t, tt.status, tt.respBody, &got)

			err := c.Delete(context.Background(), model.CredentialKey{ID: "id-1", Site: "a.com", Username: "u"})

			assert.Equal(t, http.MethodDelete, got.method)
			assert.Equal(t, map[string]any{"_id": "id-1", "site": "a.com", "username": "u"}, got.body)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantNotFound, IsNotFound(err))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "HTTP 502", (&APIError{StatusCode: 502}).Error())
	assert.Equal(t, "HTTP 404: Password not found", (&APIError{StatusCode: 404, Message: "Password not found"}).Error())
}
