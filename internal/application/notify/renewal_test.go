package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

func validRequest() RenewalRequest {
	return RenewalRequest{
		CustomerNumber: "120190612244",
		Name:           "김철수",
		Email:          "kim@example.com",
		Phone:          "010-1234-5678",
		PrivacyConsent: true,
	}
}

func newTestRelay(t *testing.T, handler http.HandlerFunc) *Relay {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r := NewRelay(config.NotifyConfig{
		RelayURL:  srv.URL,
		AccessKey: "test-access-key",
		Timeout:   5 * time.Second,
	}, logging.NewNopLogger())
	r.now = func() time.Time {
		return time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)
	}
	return r
}

func TestSend(t *testing.T) {
	var gotForm map[string]string
	relay := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	require.NoError(t, relay.Send(context.Background(), validRequest()))

	assert.Equal(t, "test-access-key", gotForm["access_key"])
	assert.Equal(t, "김철수", gotForm["name"])
	assert.Equal(t, "kim@example.com", gotForm["email"])
	assert.Equal(t, "010-1234-5678", gotForm["phone"])
	assert.Equal(t, "연차료 납부의뢰", gotForm["inquiry_type"])
	assert.Equal(t, "on", gotForm["privacy_consent"])
	assert.Contains(t, gotForm["message"], "고객번호: 120190612244")
	// Consent timestamp is rendered in KST.
	assert.Contains(t, gotForm["message"], "2026-08-30 10:00:00")
}

func TestSend_RelayRejection(t *testing.T) {
	relay := newTestRelay(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":false,"message":"quota exceeded"}`))
	})

	err := relay.Send(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotifyRelay))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSend_MalformedRelayResponse(t *testing.T) {
	relay := newTestRelay(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	})

	err := relay.Send(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotifyRelay))
}

func TestSend_RelayUnreachable(t *testing.T) {
	relay := NewRelay(config.NotifyConfig{
		RelayURL: "http://127.0.0.1:1",
		Timeout:  time.Second,
	}, logging.NewNopLogger())

	err := relay.Send(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotifyRelay))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RenewalRequest)
	}{
		{"missing name", func(r *RenewalRequest) { r.Name = "" }},
		{"missing phone", func(r *RenewalRequest) { r.Phone = " " }},
		{"missing customer number", func(r *RenewalRequest) { r.CustomerNumber = "" }},
		{"bad email", func(r *RenewalRequest) { r.Email = "not-an-email" }},
		{"email with spaces", func(r *RenewalRequest) { r.Email = "a b@example.com" }},
		{"no consent", func(r *RenewalRequest) { r.PrivacyConsent = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeValidation))
		})
	}

	assert.NoError(t, validRequest().Validate())
}
