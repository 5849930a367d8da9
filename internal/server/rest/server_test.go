package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/auth"
	"github.com/dmitrijs2005/travelboard/internal/server/credentials"
	"github.com/dmitrijs2005/travelboard/internal/server/media"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/seed"
	"github.com/dmitrijs2005/travelboard/internal/server/services"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rosterAdmin = models.Identity{ID: "admin-001", Email: "admin@dashboard.com", Role: models.RoleAdmin}
	rosterUser  = models.Identity{ID: "user-001", Email: "user@dashboard.com", Role: models.RoleUser}
)

type fakeUploader struct {
	url   string
	calls int
	data  []byte
}

func (f *fakeUploader) Upload(_ context.Context, data []byte, _ string) (string, error) {
	f.calls++
	f.data = data
	return f.url, nil
}

type response struct {
	Success    bool
	Data       json.RawMessage
	Error      string
	Code       string
	Message    string
	Source     string
	Pagination *store.Pagination
}

type harness struct {
	srv    *Server
	issuer *auth.Issuer
}

func defaultOptions() Options {
	return Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadSize:  1 << 20,
	}
}

func fallbackOf[E models.Entity[E]](kind string, seed []E) *store.Fallback[E] {
	return store.NewFallback[E](kind, nil, store.NewMemoryStore(seed...), time.Second, logging.NewNopLogger())
}

func newHarness(t *testing.T, opts Options, dir credentials.Directory, up media.Uploader, db dbx.Pinger) *harness {
	t.Helper()
	logger := logging.NewNopLogger()
	set := seed.Sample(time.Now().UTC())

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	svc := Services{
		Auth:        services.NewAuthService(dir, issuer, logger),
		Experiences: services.NewContentService(services.ExperienceKind(), fallbackOf("experience", set.Experiences), up, logger),
		Itineraries: services.NewContentService(services.ItineraryKind(), fallbackOf("itinerary", set.Itineraries), up, logger),
		Images:      services.NewContentService(services.ImageKind(), fallbackOf("image", set.Images), up, logger),
		Updates:     services.NewContentService(services.UpdateKind(), fallbackOf("update", set.Updates), up, logger),
	}
	return &harness{srv: NewServer(opts, svc, db, logger), issuer: issuer}
}

func rosterHarness(t *testing.T) *harness {
	return newHarness(t, defaultOptions(), credentials.NewRoster(credentials.DemoRoster()), nil, nil)
}

func (h *harness) token(t *testing.T, id models.Identity) string {
	t.Helper()
	tok, err := h.issuer.Issue(id)
	require.NoError(t, err)
	return tok
}

func (h *harness) do(t *testing.T, method, path, contentType string, body io.Reader, token string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)

	var resp response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func (h *harness) doJSON(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, response) {
	return h.do(t, method, path, "application/json", strings.NewReader(body), token)
}

func TestHealth(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		h := rosterHarness(t)
		rec, resp := h.do(t, http.MethodGet, "/api/health", "", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, "memory", resp.Source)

		var data healthData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "disabled", data.Database)
	})

	t.Run("database reachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		h := newHarness(t, defaultOptions(), credentials.NewRoster(credentials.DemoRoster()), nil, db)
		_, resp := h.do(t, http.MethodGet, "/api/health", "", nil, "")
		assert.Equal(t, "database", resp.Source)
		assert.Contains(t, string(resp.Data), `"database":"connected"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		h := newHarness(t, defaultOptions(), credentials.NewRoster(credentials.DemoRoster()), nil, db)
		rec, resp := h.do(t, http.MethodGet, "/api/health", "", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "memory", resp.Source)
		assert.Contains(t, string(resp.Data), `"database":"disconnected"`)
	})
}

func TestIndexListsRoutes(t *testing.T) {
	h := rosterHarness(t)
	_, resp := h.do(t, http.MethodGet, "/api/test", "", nil, "")

	var data struct {
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Contains(t, data.Endpoints, "GET /api/health")
	assert.Contains(t, data.Endpoints, "POST /api/experiences")
	assert.Contains(t, data.Endpoints, "DELETE /api/updates/{id}")
	assert.Contains(t, data.Endpoints, "GET /api/auth/credentials")
}

func TestUnknownRoute(t *testing.T) {
	h := rosterHarness(t)
	rec, resp := h.do(t, http.MethodGet, "/api/nope", "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, resp.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := rosterHarness(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/experiences", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListPagination(t *testing.T) {
	h := rosterHarness(t)
	rec, resp := h.do(t, http.MethodGet, "/api/experiences?region=All&limit=2&page=2", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "memory", resp.Source)

	var items []models.Experience
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "exp-003", items[0].ID)
	assert.Equal(t, "exp-004", items[1].ID)

	require.NotNil(t, resp.Pagination)
	assert.Equal(t, store.Pagination{Page: 2, Limit: 2, Total: 5, Pages: 3, HasNext: true, HasPrev: true}, *resp.Pagination)
}

func TestListHugePageIsEmpty(t *testing.T) {
	h := rosterHarness(t)
	rec, resp := h.do(t, http.MethodGet, "/api/experiences?page=9223372036854775807", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.JSONEq(t, `[]`, string(resp.Data))

	require.NotNil(t, resp.Pagination)
	assert.False(t, resp.Pagination.HasNext)
	assert.Equal(t, 5, resp.Pagination.Total)
}

func TestListFilters(t *testing.T) {
	h := rosterHarness(t)

	_, resp := h.do(t, http.MethodGet, "/api/experiences?region=South", "", nil, "")
	var exps []models.Experience
	require.NoError(t, json.Unmarshal(resp.Data, &exps))
	require.NotEmpty(t, exps)
	for _, e := range exps {
		assert.Equal(t, "South", e.Region)
	}

	_, resp = h.do(t, http.MethodGet, "/api/updates?type=newsletter", "", nil, "")
	var ups []models.Update
	require.NoError(t, json.Unmarshal(resp.Data, &ups))
	require.Len(t, ups, 1)
	assert.Equal(t, "upd-003", ups[0].ID)

	_, resp = h.do(t, http.MethodGet, "/api/images?search=NOTHING-MATCHES", "", nil, "")
	assert.JSONEq(t, `[]`, string(resp.Data))
	assert.Equal(t, 0, resp.Pagination.Total)
}

func TestGet(t *testing.T) {
	h := rosterHarness(t)

	rec, resp := h.do(t, http.MethodGet, "/api/itineraries/itn-001", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var it models.Itinerary
	require.NoError(t, json.Unmarshal(resp.Data, &it))
	assert.Equal(t, "itn-001", it.ID)
	assert.NotEmpty(t, it.Days)

	rec, resp = h.do(t, http.MethodGet, "/api/itineraries/missing", "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, CodeNotFound, resp.Code)
	assert.Equal(t, "memory", resp.Source)
}

func TestWritesRequireToken(t *testing.T) {
	h := rosterHarness(t)

	rec, resp := h.doJSON(t, http.MethodPost, "/api/experiences", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeUnauthorized, resp.Code)

	rec, resp = h.doJSON(t, http.MethodDelete, "/api/experiences/exp-001", ``, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeUnauthorized, resp.Code)
}

func TestCreateExperience(t *testing.T) {
	h := rosterHarness(t)
	body := `{"destination":"Kerala","region":"South","title":"Spice trail","description":"Munnar tea estates","highlights":["Tea","Spice"]}`

	rec, resp := h.doJSON(t, http.MethodPost, "/api/experiences", body, h.token(t, rosterUser))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "memory", resp.Source)

	var e models.Experience
	require.NoError(t, json.Unmarshal(resp.Data, &e))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "user-001", e.AuthorID)
	assert.Equal(t, []string{"Tea", "Spice"}, e.Highlights)

	rec, _ = h.do(t, http.MethodGet, "/api/experiences/"+e.ID, "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	h := rosterHarness(t)
	tok := h.token(t, rosterUser)

	rec, resp := h.doJSON(t, http.MethodPost, "/api/experiences", `{"destination":"Goa"}`, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, resp.Code)
	assert.NotEmpty(t, resp.Message)

	rec, resp = h.doJSON(t, http.MethodPost, "/api/experiences", `not json`, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, resp.Code)

	rec, resp = h.doJSON(t, http.MethodPost, "/api/updates", `{"type":"gossip","title":"t","content":"c"}`, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, resp.Code)
}

func TestUpdateIsPartial(t *testing.T) {
	h := rosterHarness(t)

	rec, resp := h.doJSON(t, http.MethodPut, "/api/experiences/exp-001", `{"title":"Backwaters by night"}`, h.token(t, rosterAdmin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var e models.Experience
	require.NoError(t, json.Unmarshal(resp.Data, &e))
	assert.Equal(t, "Backwaters by night", e.Title)
	assert.Equal(t, "Kerala", e.Destination)
	assert.Equal(t, seed.AuthorID, e.AuthorID)
}

func TestOwnershipIsEnforced(t *testing.T) {
	h := rosterHarness(t)
	userTok := h.token(t, rosterUser)

	rec, resp := h.doJSON(t, http.MethodPut, "/api/images/img-001", `{"caption":"mine now"}`, userTok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, CodeForbidden, resp.Code)

	rec, resp = h.do(t, http.MethodDelete, "/api/images/img-001", "", nil, userTok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, CodeForbidden, resp.Code)

	_, resp = h.do(t, http.MethodGet, "/api/images/img-001", "", nil, "")
	var img models.Image
	require.NoError(t, json.Unmarshal(resp.Data, &img))
	assert.NotEqual(t, "mine now", img.Caption)
}

func TestDelete(t *testing.T) {
	h := rosterHarness(t)

	rec, resp := h.do(t, http.MethodDelete, "/api/updates/upd-001", "", nil, h.token(t, rosterAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "update deleted", resp.Message)

	rec, _ = h.do(t, http.MethodGet, "/api/updates/upd-001", "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnerCanDeleteOwnRecord(t *testing.T) {
	h := rosterHarness(t)
	tok := h.token(t, rosterUser)

	rec, resp := h.doJSON(t, http.MethodPost, "/api/updates", `{"type":"newsletter","title":"Hello","content":"World"}`, tok)
	require.Equal(t, http.StatusCreated, rec.Code)
	var u models.Update
	require.NoError(t, json.Unmarshal(resp.Data, &u))

	rec, _ = h.do(t, http.MethodDelete, "/api/updates/"+u.ID, "", nil, tok)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func multipartBody(t *testing.T, fields map[string]string, fileType string, file []byte) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="image"; filename="photo"`)
		hdr.Set("Content-Type", fileType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), &buf
}

func TestMultipartCreateUploadsImage(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example.com/travel-dashboard/images/a.jpg"}
	h := newHarness(t, defaultOptions(), credentials.NewRoster(credentials.DemoRoster()), up, nil)

	ct, body := multipartBody(t, map[string]string{
		"destination": "Agra", "region": "North", "caption": "Taj at dawn",
	}, "image/jpeg", []byte("jpeg-bytes"))

	rec, resp := h.do(t, http.MethodPost, "/api/images", ct, body, h.token(t, rosterUser))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, []byte("jpeg-bytes"), up.data)

	var img models.Image
	require.NoError(t, json.Unmarshal(resp.Data, &img))
	assert.Equal(t, up.url, img.URL)
}

func TestMultipartRejectsNonImage(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example.com/x"}
	h := newHarness(t, defaultOptions(), credentials.NewRoster(credentials.DemoRoster()), up, nil)

	ct, body := multipartBody(t, map[string]string{
		"destination": "Agra", "region": "North", "caption": "c",
	}, "text/plain", []byte("hello"))

	rec, resp := h.do(t, http.MethodPost, "/api/images", ct, body, h.token(t, rosterUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, resp.Code)
	assert.Zero(t, up.calls)
}

func TestUploadFailureAbortsCreate(t *testing.T) {
	h := rosterHarness(t)

	ct, body := multipartBody(t, map[string]string{
		"destination": "Agra", "region": "North", "caption": "no media host",
	}, "image/png", []byte("png-bytes"))

	rec, resp := h.do(t, http.MethodPost, "/api/images", ct, body, h.token(t, rosterUser))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeUploadFailed, resp.Code)

	_, resp = h.do(t, http.MethodGet, "/api/images?search=no+media+host", "", nil, "")
	assert.Equal(t, 0, resp.Pagination.Total)
}

func TestBodyTooLarge(t *testing.T) {
	opts := defaultOptions()
	opts.MaxUploadSize = 16
	h := newHarness(t, opts, credentials.NewRoster(credentials.DemoRoster()), nil, nil)

	rec, resp := h.doJSON(t, http.MethodPost, "/api/updates", `{"type":"newsletter","title":"much too long"}`, h.token(t, rosterUser))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, CodePayloadTooLarge, resp.Code)
}
