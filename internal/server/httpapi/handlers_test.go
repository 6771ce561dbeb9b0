package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibe1s/JRSolisPortfolio/internal/common"
	"github.com/bibe1s/JRSolisPortfolio/internal/logging"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/auth"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/mediahost"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/services"
)

const (
	adminEmail = "admin@example.com"
	secret     = "test-secret"
)

type fakeRepo struct {
	rows    []*models.StoredProfile
	nextID  int64
	failAll bool
	writes  int
}

func (f *fakeRepo) Current(ctx context.Context) (*models.StoredProfile, error) {
	if f.failAll {
		return nil, errors.New("store unreachable")
	}
	if len(f.rows) == 0 {
		return nil, common.ErrorNotFound
	}
	return f.rows[len(f.rows)-1], nil
}

func (f *fakeRepo) Insert(ctx context.Context, doc *models.Profile) (int64, error) {
	f.writes++
	if f.failAll {
		return 0, errors.New("store unreachable")
	}
	f.nextID++
	f.rows = append(f.rows, &models.StoredProfile{ID: f.nextID, Document: doc, UpdatedAt: time.Now()})
	return f.nextID, nil
}

func (f *fakeRepo) Save(ctx context.Context, doc *models.Profile) (int64, error) {
	f.writes++
	if f.failAll {
		return 0, errors.New("store unreachable")
	}
	if len(f.rows) == 0 {
		f.nextID++
		f.rows = append(f.rows, &models.StoredProfile{ID: f.nextID, Document: doc, UpdatedAt: time.Now()})
		return f.nextID, nil
	}
	row := f.rows[len(f.rows)-1]
	row.Document = doc
	return row.ID, nil
}

type fakeHost struct {
	calls int
	fail  error
}

func (f *fakeHost) Store(ctx context.Context, obj mediahost.Object) (*mediahost.Result, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	return &mediahost.Result{
		URL:      "https://cdn.example.com/portfolio-bucket/" + obj.Key,
		PublicID: obj.Key,
	}, nil
}

func newTestServer(t *testing.T, repo *fakeRepo, host *fakeHost) *httptest.Server {
	t.Helper()
	logger := logging.NewJSON()
	s := NewServer(":0",
		auth.NewVerifier([]byte(secret), adminEmail),
		services.NewProfileService(repo, nil, logger),
		services.NewMediaService(host, logger),
		logger,
	)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GenerateToken(adminEmail, []byte(secret), time.Hour)
	require.NoError(t, err)
	return tok
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func multipartImage(t *testing.T, field, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + name + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func jpegFile(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

// --- reads ---

func TestLoadProfile_SeedsAndServesDefault(t *testing.T) {
	repo := &fakeRepo{}
	ts := newTestServer(t, repo, &fakeHost{})

	resp, err := http.Get(ts.URL + "/api/profile")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	web2 := body["web2"].(map[string]any)
	personal := web2["personal"].(map[string]any)
	assert.Equal(t, models.DefaultProfile().Web2.Personal.Name, personal["name"])
	assert.Len(t, repo.rows, 1, "empty read seeds the default row")
}

func TestLoadProfile_StoreFaultDegradesToDefault(t *testing.T) {
	repo := &fakeRepo{failAll: true}
	ts := newTestServer(t, repo, &fakeHost{})

	resp, err := http.Get(ts.URL + "/api/profile")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reads never surface a 5xx")

	body := decodeBody(t, resp)
	assert.Contains(t, body, "web2")
	assert.Contains(t, body, "web3")
}

// --- auth ---

func TestWriteEndpoints_AuthUniformity(t *testing.T) {
	expired, err := auth.GenerateToken(adminEmail, []byte(secret), -time.Minute)
	require.NoError(t, err)
	wrongPrincipal, err := auth.GenerateToken("intruder@example.com", []byte(secret), time.Hour)
	require.NoError(t, err)

	headers := map[string]string{
		"missing header":    "",
		"non-bearer header": "Token abc",
		"invalid token":     "Bearer not.a.jwt",
		"expired token":     "Bearer " + expired,
		"wrong principal":   "Bearer " + wrongPrincipal,
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			repo := &fakeRepo{}
			host := &fakeHost{}
			ts := newTestServer(t, repo, host)

			// save
			req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/profile",
				strings.NewReader(`{"web2":{},"web3":{}}`))
			require.NoError(t, err)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, "Unauthorized", body["error"])

			// upload
			buf, ct := multipartImage(t, "image", "x.jpg", "image/jpeg", jpegFile(t, 2, 2))
			req, err = http.NewRequest(http.MethodPost, ts.URL+"/api/upload", buf)
			require.NoError(t, err)
			req.Header.Set("Content-Type", ct)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err = http.DefaultClient.Do(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			resp.Body.Close()

			assert.Zero(t, repo.writes, "no store mutation on rejected request")
			assert.Zero(t, host.calls, "no host call on rejected request")
		})
	}
}

// --- save ---

func TestSaveProfile_Success(t *testing.T) {
	repo := &fakeRepo{}
	ts := newTestServer(t, repo, &fakeHost{})

	doc := models.DefaultProfile()
	doc.Web2.Personal.Name = "edited"
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/profile", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Profile saved successfully", body["message"])

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "edited", repo.rows[0].Document.Web2.Personal.Name)
}

func TestSaveProfile_MalformedBody(t *testing.T) {
	ts := newTestServer(t, &fakeRepo{}, &fakeHost{})

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/profile", strings.NewReader("{nope"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSaveProfile_StoreFailureIs500(t *testing.T) {
	ts := newTestServer(t, &fakeRepo{failAll: true}, &fakeHost{})

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/profile",
		strings.NewReader(`{"web2":{},"web3":{}}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "writes never silently fail")

	body := decodeBody(t, resp)
	assert.Equal(t, "Failed to save profile", body["error"])
}

// --- upload ---

func postUpload(t *testing.T, url string, body *bytes.Buffer, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/api/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUpload_MissingFile(t *testing.T) {
	host := &fakeHost{}
	ts := newTestServer(t, &fakeRepo{}, host)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "no file here"))
	require.NoError(t, w.Close())

	resp := postUpload(t, ts.URL, &buf, w.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "No image file provided", body["error"])
	assert.Zero(t, host.calls)
}

func TestUpload_DisallowedType(t *testing.T) {
	host := &fakeHost{}
	ts := newTestServer(t, &fakeRepo{}, host)

	buf, ct := multipartImage(t, "image", "pic.bmp", "image/bmp", []byte("BM fake bitmap"))
	resp := postUpload(t, ts.URL, buf, ct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.", body["error"])
	assert.Zero(t, host.calls)
}

func TestUpload_OversizeFile(t *testing.T) {
	// One byte past the limit: small enough to survive the body cap with
	// its multipart framing, so the pipeline's own size check reports it.
	host := &fakeHost{}
	ts := newTestServer(t, &fakeRepo{}, host)

	payload := bytes.Repeat([]byte{0xAB}, services.MaxUploadBytes+1)
	buf, ct := multipartImage(t, "image", "huge.jpg", "image/jpeg", payload)
	resp := postUpload(t, ts.URL, buf, ct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "File too large. Maximum size is 10MB.", body["error"])
	assert.Zero(t, host.calls)
}

func TestUpload_OversizeBodyTripsReader(t *testing.T) {
	// Far past the limit: the capped reader cuts the body off mid-parse.
	// The response must still name the size, not a missing file.
	host := &fakeHost{}
	logger := logging.NewJSON()
	s := NewServer(":0",
		auth.NewVerifier([]byte(secret), adminEmail),
		services.NewProfileService(&fakeRepo{}, nil, logger),
		services.NewMediaService(host, logger),
		logger,
	)

	payload := bytes.Repeat([]byte{0xAB}, services.MaxUploadBytes+2<<20)
	buf, ct := multipartImage(t, "image", "huge.jpg", "image/jpeg", payload)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "File too large. Maximum size is 10MB.", body["error"])
	assert.Zero(t, host.calls)
}

func TestRequireAdmin_ExposesPrincipalToHandlers(t *testing.T) {
	logger := logging.NewJSON()
	s := NewServer(":0",
		auth.NewVerifier([]byte(secret), adminEmail),
		services.NewProfileService(&fakeRepo{}, nil, logger),
		services.NewMediaService(&fakeHost{}, logger),
		logger,
	)

	var got string
	h := s.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = principalEmail(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, adminEmail, got, "handlers attribute writes to the acting principal")
}

func TestUpload_HostFailureIs500WithDetails(t *testing.T) {
	host := &fakeHost{fail: errors.New("host melted")}
	ts := newTestServer(t, &fakeRepo{}, host)

	buf, ct := multipartImage(t, "image", "p.jpg", "image/jpeg", jpegFile(t, 2, 2))
	resp := postUpload(t, ts.URL, buf, ct)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Failed to upload image", body["error"])
	assert.Contains(t, body["details"], "host melted")
}

// --- end to end ---

func TestUploadThenSaveThenLoad(t *testing.T) {
	repo := &fakeRepo{}
	host := &fakeHost{}
	ts := newTestServer(t, repo, host)

	// upload a ~2MB JPEG
	data := jpegFile(t, 1600, 1200)
	buf, ct := multipartImage(t, "image", "portrait.jpg", "image/jpeg", data)
	resp := postUpload(t, ts.URL, buf, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	up := decodeBody(t, resp)
	imageURL, _ := up["imageUrl"].(string)
	require.NotEmpty(t, imageURL)
	assert.Greater(t, up["width"].(float64), float64(0))
	assert.Greater(t, up["height"].(float64), float64(0))

	// embed the reference and save
	doc := models.DefaultProfile()
	doc.Web2.Personal.Image = &imageURL
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/profile", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	saveResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, saveResp.StatusCode)
	saveResp.Body.Close()

	// load it back
	loadResp, err := http.Get(ts.URL + "/api/profile")
	require.NoError(t, err)
	got := decodeBody(t, loadResp)
	personal := got["web2"].(map[string]any)["personal"].(map[string]any)
	assert.Equal(t, imageURL, personal["image"])
}
