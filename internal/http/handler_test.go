package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/auth"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
	"fleet-service/internal/service/servicetest"
	"fleet-service/internal/storage"
)

// tokenPrincipals resolves the bearer token directly to a principal.
type tokenPrincipals map[string]model.Principal

func (tp tokenPrincipals) Resolve(_ context.Context, token string) (auth.Identity, error) {
	p, ok := tp[token]
	if !ok {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return auth.Identity{UserID: p.UserID}, nil
}

func (tp tokenPrincipals) LoadPrincipal(_ context.Context, userID uuid.UUID, _ string) (model.Principal, error) {
	for _, p := range tp {
		if p.UserID == userID {
			return p, nil
		}
	}
	return model.Principal{UserID: userID, Role: model.RoleDriver}, nil
}

type testServer struct {
	engine *gin.Engine
	store  *servicetest.Store
	tokens tokenPrincipals
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := servicetest.New()
	blobs, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	driver := model.Driver{UserID: uuid.New(), EmployeeID: "EMP-1", IsActive: true}
	require.NoError(t, servicetest.Drivers{Store: store}.Create(context.Background(), &driver))
	driverID := driver.ID

	tokens := tokenPrincipals{
		"admin":   {UserID: uuid.New(), Role: model.RoleAdmin},
		"manager": {UserID: uuid.New(), Role: model.RoleManager},
		"driver":  {UserID: driver.UserID, Role: model.RoleDriver, DriverID: &driverID},
	}

	log := zerolog.Nop()
	handler := NewHandler(Services{
		Users:    service.NewUserService(servicetest.Users{Store: store}, servicetest.Drivers{Store: store}),
		Drivers:  service.NewDriverService(servicetest.Drivers{Store: store}, servicetest.Users{Store: store}),
		Vehicles: service.NewVehicleService(servicetest.Vehicles{Store: store}),
		Trips:    service.NewTripService(servicetest.Trips{Store: store}, servicetest.Assignments{Store: store}, nil),
		Payouts:  service.NewPayoutService(servicetest.Payouts{Store: store}, nil),
		Documents: service.NewDocumentService(servicetest.Documents{Store: store}, blobs,
			service.UploadLimits{MaxFiles: 5, MaxFileSize: 1024}, log),
	}, log)

	engine := NewRouter(handler, middleware.Auth(tokens, tokens, "sb-access-token", log), "test", log, 1<<20)
	return &testServer{engine: engine, store: store, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCalculatePayoutEndpoint(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		body   string
		code   int
		payout float64
	}{
		{`{"revenue": 2000}`, http.StatusOK, 600},
		{`{"revenue": 2250}`, http.StatusOK, 675},
		{`{"revenue": "3000"}`, http.StatusOK, 1200},
		{`{"revenue": "lots"}`, http.StatusBadRequest, 0},
		{`{}`, http.StatusBadRequest, 0},
		{`{"revenue": -10}`, http.StatusBadRequest, 0},
		{`{"revenue": 1e400}`, http.StatusBadRequest, 0},
		{`{"revenue": 1e2000000000}`, http.StatusBadRequest, 0},
		{`{"revenue": 100000000}`, http.StatusBadRequest, 0},
		{`{"revenue": 99999999.99}`, http.StatusOK, 69999099.99},
	}

	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/calculate-payout", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			s.engine.ServeHTTP(rec, req)

			require.Equal(t, tc.code, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)
			if tc.code == http.StatusOK {
				assert.InDelta(t, tc.payout, body["payout"], 0.001)
				assert.NotEmpty(t, body["formula"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestRoleChecks(t *testing.T) {
	s := newTestServer(t)
	vehicle := map[string]interface{}{"registration_number": "kca 001-a", "make": "Nissan", "model": "Note"}

	rec := s.do(t, http.MethodPost, "/api/vehicles", "", vehicle)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/vehicles", "nobody", vehicle)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/vehicles", "driver", vehicle)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/vehicles", "manager", vehicle)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/vehicles", "admin", vehicle)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "KCA001A", data["registration_number"])
	assert.Equal(t, "active", data["status"])

	rec = s.do(t, http.MethodGet, "/api/drivers", "manager", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/drivers", "driver", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/drivers/not-a-uuid", "manager", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/drivers/"+uuid.NewString(), "manager", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoleChecksRunBeforeBodyValidation(t *testing.T) {
	s := newTestServer(t)
	empty := map[string]interface{}{}

	cases := []struct {
		method string
		path   string
		token  string
	}{
		{http.MethodPost, "/api/vehicles", "driver"},
		{http.MethodPost, "/api/vehicles", "manager"},
		{http.MethodPatch, "/api/vehicles/" + uuid.NewString(), "driver"},
		{http.MethodPost, "/api/drivers", "driver"},
		{http.MethodPost, "/api/drivers", "manager"},
		{http.MethodPatch, "/api/users/" + uuid.NewString() + "/role", "driver"},
		{http.MethodPatch, "/api/users/" + uuid.NewString() + "/role", "manager"},
		{http.MethodPost, "/api/assignments", "driver"},
		{http.MethodPost, "/api/fuel-stations", "manager"},
		{http.MethodPost, "/api/inventory", "driver"},
		{http.MethodPost, "/api/maintenance", "driver"},
		{http.MethodPatch, "/api/payouts/" + uuid.NewString() + "/approve", "driver"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path+" as "+tc.token, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, tc.token, empty)
			require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
			assert.Equal(t, "permission denied", decodeBody(t, rec)["error"])
		})
	}

	rec := s.do(t, http.MethodPost, "/api/vehicles", "admin", empty)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTripCreationCreatesPendingPayout(t *testing.T) {
	s := newTestServer(t)
	trip := map[string]interface{}{"pickup_location": "Airport", "drop_location": "Karen", "revenue": "3000"}

	rec := s.do(t, http.MethodPost, "/api/trips", "driver", trip)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, decodeBody(t, rec)["error"], "no active vehicle assignment")

	driverID := *s.tokens["driver"].DriverID
	assignment := model.Assignment{DriverID: driverID, VehicleID: uuid.New(), IsActive: true}
	require.NoError(t, servicetest.Assignments{Store: s.store}.Reassign(context.Background(), &assignment))

	rec = s.do(t, http.MethodPost, "/api/trips", "driver", trip)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	payout := data["payout"].(map[string]interface{})
	assert.Equal(t, "pending", payout["status"])
	assert.Equal(t, "1200", payout["calculated_amount"])

	rec = s.do(t, http.MethodGet, "/api/payouts", "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeBody(t, rec)["data"].([]interface{})
	require.Len(t, pending, 1)
	payoutID := pending[0].(map[string]interface{})["id"].(string)

	rec = s.do(t, http.MethodPatch, "/api/payouts/"+payoutID+"/approve", "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPatch, "/api/payouts/"+payoutID+"/reject", "manager", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/payouts/"+payoutID+"/paid", "admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer manager")
	return req
}

func TestDocumentUploadEndpoint(t *testing.T) {
	s := newTestServer(t)
	pdf := []byte("%PDF-1.4\n%%EOF\n")
	entityID := uuid.NewString()
	fields := map[string]string{"entityId": entityID, "entityType": "vehicle", "documentType": "insurance"}

	tooMany := map[string][]byte{}
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf", "f.pdf"} {
		tooMany[name] = pdf
	}

	rejected := map[string]map[string][]byte{
		"extension": {"tool.exe": pdf},
		"count":     tooMany,
		"size":      {"big.pdf": append(append([]byte{}, pdf...), make([]byte, 2048)...)},
		"content":   {"photo.jpg": pdf},
	}
	for name, files := range rejected {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.engine.ServeHTTP(rec, multipartUpload(t, fields, files))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, multipartUpload(t, fields, map[string][]byte{"policy.pdf": pdf}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	docs := decodeBody(t, rec)["data"].([]interface{})
	require.Len(t, docs, 1)
	doc := docs[0].(map[string]interface{})
	assert.NotContains(t, doc, "file_path")
	docID := doc["id"].(string)

	rec = s.do(t, http.MethodGet, "/api/documents?entity_type=vehicle&entity_id="+entityID, "driver", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 1)

	rec = s.do(t, http.MethodGet, "/api/documents/vehicle/"+entityID, "driver", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decodeBody(t, rec)["data"], 1)

	rec = s.do(t, http.MethodGet, "/api/documents/vehicle/"+uuid.NewString(), "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["data"])

	rec = s.do(t, http.MethodGet, "/api/documents/spaceship/"+entityID, "manager", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/documents/"+docID+"/download", "driver", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pdf, rec.Body.Bytes())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="policy.pdf"`)

	rec = s.do(t, http.MethodDelete, "/api/documents/"+docID, "driver", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/documents/"+docID, "manager", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/documents/"+docID+"/view", "manager", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
