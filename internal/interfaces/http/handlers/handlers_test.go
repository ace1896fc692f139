package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicpatent/unic-ip/internal/application/export"
	"github.com/unicpatent/unic-ip/internal/application/lookup"
	"github.com/unicpatent/unic-ip/internal/application/member"
	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/domain/annuity"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/cache"
	"github.com/unicpatent/unic-ip/internal/infrastructure/kipris"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/internal/infrastructure/registry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRegistry struct {
	rights  func(ctx context.Context, v string) (*registry.RightListResult, error)
	history func(ctx context.Context, rgstNo string) ([]annuity.PaymentEntry, error)
}

func (f *fakeRegistry) RightsByCustomerNumber(ctx context.Context, v string) (*registry.RightListResult, error) {
	return f.rights(ctx, v)
}

func (f *fakeRegistry) RightsByBusinessNumber(ctx context.Context, v string) (*registry.RightListResult, error) {
	return f.rights(ctx, v)
}

func (f *fakeRegistry) RegisterHistory(ctx context.Context, rgstNo string) ([]annuity.PaymentEntry, error) {
	if f.history == nil {
		return nil, nil
	}
	return f.history(ctx, rgstNo)
}

type fakeKipris struct {
	word   func(ctx context.Context, w string) ([]patent.Record, error)
	biblio func(ctx context.Context, appNo string) (*patent.Record, error)
}

func (f *fakeKipris) WordSearch(ctx context.Context, w string) ([]patent.Record, error) {
	return f.word(ctx, w)
}

func (f *fakeKipris) BibliographicDetail(ctx context.Context, appNo string) (*patent.Record, error) {
	return f.biblio(ctx, appNo)
}

func (f *fakeKipris) PublicationFullText(context.Context, string) (*kipris.FullTextRef, error) {
	return nil, nil
}

func (f *fakeKipris) AnnouncementFullText(context.Context, string) (*kipris.FullTextRef, error) {
	return nil, nil
}

func newLookupService(reg registry.Client, kp kipris.Client) *lookup.Service {
	cfg := config.LookupConfig{BatchSize: 10, BatchDelay: time.Millisecond, MaxBulk: 100, CallTimeout: time.Second}
	return lookup.NewService(reg, kp, cache.NewNopCache(), cfg, logging.NewNopLogger(), nil)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/x", handler)

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSearchRegistered_Validation(t *testing.T) {
	h := NewSearchHandler(nil, logging.NewNopLogger())

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"bad search type", `{"searchType":"9","searchValue":"1234567890"}`},
		{"short business number", `{"searchType":"1","searchValue":"12345"}`},
		{"non-numeric customer number", `{"searchType":"2","searchValue":"12019061224a"}`},
		{"customer number wrong length", `{"searchType":"2","searchValue":"1234567890"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.SearchRegistered, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, decodeBody(t, rec)["success"])
		})
	}
}

func TestSearchRegistered_OK(t *testing.T) {
	rec1 := patent.NewRecord("1020190012345")
	rec1.RegistrationNumber = "1023456780000"
	rec1.RegistrationStatus = patent.StatusRegistered

	reg := &fakeRegistry{
		rights: func(_ context.Context, v string) (*registry.RightListResult, error) {
			assert.Equal(t, "120190612244", v)
			return &registry.RightListResult{
				TotalCount:    1,
				ApplicantName: "주식회사 유니크",
				Records:       []patent.Record{rec1},
			}, nil
		},
	}
	h := NewSearchHandler(newLookupService(reg, &fakeKipris{}), logging.NewNopLogger())

	rec := postJSON(t, h.SearchRegistered, `{"searchType":"2","searchValue":"120190612244"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "주식회사 유니크", body["applicantName"])
	assert.Equal(t, float64(1), body["totalCount"])
}

func TestSearchApplication_Validation(t *testing.T) {
	h := NewSearchHandler(nil, logging.NewNopLogger())

	rec := postJSON(t, h.SearchApplication, `{"customerNumber":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.SearchApplication, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPatentDetails(t *testing.T) {
	kp := &fakeKipris{
		biblio: func(_ context.Context, appNo string) (*patent.Record, error) {
			detail := patent.NewRecord(appNo)
			detail.RegistrationNumber = "10" + appNo
			detail.RegistrationStatus = patent.StatusRegistered
			return &detail, nil
		},
	}
	reg := &fakeRegistry{}
	h := NewSearchHandler(newLookupService(reg, kp), logging.NewNopLogger())

	rec := postJSON(t, h.GetPatentDetails, `{"applicationNumbers":["1020190012345","1020200054321"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, details, 2)
	assert.Contains(t, details, "1020190012345")
}

func TestGetPatentDetails_MissingList(t *testing.T) {
	h := NewSearchHandler(nil, logging.NewNopLogger())

	rec := postJSON(t, h.GetPatentDetails, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPaymentHistory_Validation(t *testing.T) {
	h := NewSearchHandler(nil, logging.NewNopLogger())

	rec := postJSON(t, h.GetPaymentHistory, `{"registrationNumber":"10-2345678"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPaymentHistory_OK(t *testing.T) {
	reg := &fakeRegistry{
		history: func(_ context.Context, rgstNo string) ([]annuity.PaymentEntry, error) {
			assert.Equal(t, "1023456780000", rgstNo)
			return []annuity.PaymentEntry{
				{AnnualYear: "4", PaymentDate: "20240315", Amount: "95000"},
			}, nil
		},
	}
	h := NewSearchHandler(newLookupService(reg, &fakeKipris{}), logging.NewNopLogger())

	rec := postJSON(t, h.GetPaymentHistory, `{"registrationNumber":"1023456780000"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	info, ok := body["paymentInfo"].([]interface{})
	require.True(t, ok)
	assert.Len(t, info, 1)
}

func TestExportExcel(t *testing.T) {
	h := NewExportHandler(export.NewWriter(logging.NewNopLogger(), nil), logging.NewNopLogger())

	rec := patent.NewRecord("1020190012345")
	rec.RegistrationStatus = patent.StatusRegistered
	payload, err := json.Marshal(map[string]interface{}{
		"type":       "registered",
		"registered": []lookup.RegisteredPatent{{Record: rec}},
	})
	require.NoError(t, err)

	resp := postJSON(t, h.ExportExcel, string(payload))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, xlsxContentType, resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, resp.Body.Bytes())
}

func TestExportExcel_NoRows(t *testing.T) {
	h := NewExportHandler(export.NewWriter(logging.NewNopLogger(), nil), logging.NewNopLogger())

	resp := postJSON(t, h.ExportExcel, `{"type":"registered","registered":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = postJSON(t, h.ExportExcel, `{"type":"csv"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestVerifyMember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "member.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"members":[{"customerNumber":"120190612244","name":"주식회사 유니크"}]}`), 0o600))

	verifier := member.NewVerifier(config.MemberConfig{RosterPath: path}, logging.NewNopLogger())
	h := NewMemberHandler(verifier, logging.NewNopLogger())

	rec := postJSON(t, h.VerifyMember, `{"customerNumber":"120190612244"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["isMember"])
	assert.Equal(t, "주식회사 유니크", body["memberName"])

	rec = postJSON(t, h.VerifyMember, `{"customerNumber":"999999999999"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, false, body["isMember"])
}

func TestVerifyMember_RosterFailure(t *testing.T) {
	verifier := member.NewVerifier(config.MemberConfig{
		RosterPath: filepath.Join(t.TempDir(), "absent.json"),
	}, logging.NewNopLogger())
	h := NewMemberHandler(verifier, logging.NewNopLogger())

	rec := postJSON(t, h.VerifyMember, `{"customerNumber":"120190612244"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(cache.NewNopCache(), nil)

	r := gin.New()
	r.GET("/healthz", h.Healthz)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}
