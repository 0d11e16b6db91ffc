package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vet-practice/internal/adapters/auth/apitoken"
	"vet-practice/internal/router"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func newServer(t *testing.T, opts router.Options) (*httptest.Server, string) {
	t.Helper()

	if opts.ImageDir == "" {
		opts.ImageDir = t.TempDir()
	}
	h, err := router.NewRouter(opts)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, opts.ImageDir
}

func TestHTTP_EndToEnd_OwnerDogTreatment(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	// 1) Dueño
	ownerID := createOwner(t, ts.URL, "Ana")

	// 2) Perro "Rex" del dueño (JSON, sin imagen)
	var dog struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		OwnerID int    `json:"ownerID"`
	}
	{
		st, body, hdr := doJSON(t, ts.URL, "POST", "/Dog", map[string]any{
			"name": "Rex", "age": 3, "race": "Labrador", "weight": 25.5, "ownerID": ownerID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &dog)
		if dog.ID == 0 || dog.Name != "Rex" || dog.OwnerID != ownerID {
			t.Fatalf("unexpected dog: %s", string(body))
		}
		if loc := hdr.Get("Location"); loc != fmt.Sprintf("/Dog/%d", dog.ID) {
			t.Fatalf("unexpected Location %q", loc)
		}
	}

	// 3) El dueño trae sus perros
	{
		st, body, _ := doJSON(t, ts.URL, "GET", fmt.Sprintf("/Owner/%d", ownerID), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get owner, got %d body=%s", st, string(body))
		}
		var owner struct {
			Dogs []struct {
				Name string `json:"name"`
			} `json:"dogs"`
		}
		_ = json.Unmarshal(body, &owner)
		if len(owner.Dogs) != 1 || owner.Dogs[0].Name != "Rex" {
			t.Fatalf("expected owner with Rex, got %s", string(body))
		}
	}

	// 4) Tratamiento para Rex
	treatmentID := 0
	{
		st, body, _ := doJSON(t, ts.URL, "POST", "/Treatment", map[string]any{
			"description": "Vacuna antirrábica",
			"date":        "2025-05-12",
			"time":        "10:30",
			"cost":        45.5,
			"dogID":       dog.ID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create treatment, got %d body=%s", st, string(body))
		}
		var tr struct {
			ID int `json:"id"`
		}
		_ = json.Unmarshal(body, &tr)
		treatmentID = tr.ID
	}

	// 5) PATCH con valores vacíos no cambia nada
	{
		st, body, _ := doJSON(t, ts.URL, "PATCH", fmt.Sprintf("/Treatment/%d", treatmentID), map[string]any{
			"cost": 0, "description": "",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
		}
	}
	{
		st, body, _ := doJSON(t, ts.URL, "GET", fmt.Sprintf("/Treatment/%d", treatmentID), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get treatment, got %d body=%s", st, string(body))
		}
		var tr struct {
			Description string  `json:"description"`
			Date        string  `json:"date"`
			Time        string  `json:"time"`
			Cost        float64 `json:"cost"`
			DogID       int     `json:"dogID"`
		}
		_ = json.Unmarshal(body, &tr)
		if tr.Description != "Vacuna antirrábica" || tr.Cost != 45.5 || tr.DogID != dog.ID {
			t.Fatalf("patch changed fields: %s", string(body))
		}
		if tr.Date != "2025-05-12" || tr.Time != "10:30:00" {
			t.Fatalf("unexpected date/time: %s", string(body))
		}
	}

	// 6) PATCH real
	{
		st, body, _ := doJSON(t, ts.URL, "PATCH", fmt.Sprintf("/Treatment/%d", treatmentID), map[string]any{
			"cost": 50,
		})
		if st != http.StatusOK || !strings.Contains(string(body), `"cost":50`) {
			t.Fatalf("expected patched cost, got %d body=%s", st, string(body))
		}
	}

	// 7) Filtro por perro
	{
		st, body, _ := doJSON(t, ts.URL, "GET", fmt.Sprintf("/Treatment?dogID=%d", dog.ID+100), nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty filtered list, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Treatment_UnknownDogIsRejected(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	st, body, _ := doJSON(t, ts.URL, "POST", "/Treatment", map[string]any{
		"description": "Control", "date": "2025-05-12", "cost": 10, "dogID": 999,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown dog, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "dog") {
		t.Fatalf("expected message about dog, got %s", string(body))
	}

	_, body, _ = doJSON(t, ts.URL, "GET", "/Treatment", nil)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("treatment was persisted: %s", string(body))
	}
}

func TestHTTP_Owner_IDMismatch(t *testing.T) {
	ts, _ := newServer(t, router.Options{})
	ownerID := createOwner(t, ts.URL, "Ana")

	payload := ownerPayload("Ana")
	payload["id"] = ownerID + 1
	st, body, _ := doJSON(t, ts.URL, "PUT", fmt.Sprintf("/Owner/%d", ownerID), payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 id mismatch, got %d body=%s", st, string(body))
	}

	payload["id"] = ownerID
	payload["city"] = "Cusco"
	st, body, _ = doJSON(t, ts.URL, "PUT", fmt.Sprintf("/Owner/%d", ownerID), payload)
	if st != http.StatusOK || !strings.Contains(string(body), `"city":"Cusco"`) {
		t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
	}

	st, _, _ = doJSON(t, ts.URL, "PUT", "/Owner/999", map[string]any{"id": 999, "firstName": "x"})
	if st != http.StatusBadRequest && st != http.StatusNotFound {
		t.Fatalf("expected 400/404 for unknown owner, got %d", st)
	}
}

func TestHTTP_DogImage_Lifecycle(t *testing.T) {
	ts, dir := newServer(t, router.Options{})

	// Campos con mayúscula como los manda el SPA.
	st, body := doMultipart(t, ts.URL, "POST", "/Dog", map[string]string{
		"Name": "Luna", "Age": "2", "Race": "Beagle", "Weight": "12,5", "OwnerID": "1",
	}, "Image", "luna.png", "image/png", pngBytes)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog with image, got %d body=%s", st, string(body))
	}
	var dog struct {
		ID       int     `json:"id"`
		Weight   float64 `json:"weight"`
		ImageURL string  `json:"imageUrl"`
	}
	_ = json.Unmarshal(body, &dog)
	if dog.ImageURL == "" || dog.Weight != 12.5 {
		t.Fatalf("unexpected dog: %s", string(body))
	}
	if n := countFiles(t, dir); n != 1 {
		t.Fatalf("expected 1 image file, got %d", n)
	}

	// Por la API
	{
		resp, err := http.Get(fmt.Sprintf("%s/Dog/image/%d", ts.URL, dog.ID))
		if err != nil {
			t.Fatalf("get image: %v", err)
		}
		got, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
			t.Fatalf("expected 200 image/png, got %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
		}
		if !bytes.Equal(got, pngBytes) {
			t.Fatalf("image bytes differ")
		}
	}

	// Como archivo estático
	{
		resp, err := http.Get(ts.URL + dog.ImageURL)
		if err != nil {
			t.Fatalf("get static image: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 static image, got %d", resp.StatusCode)
		}
	}

	// Reemplazo de imagen: el archivo anterior se borra
	{
		gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
		st, body := doMultipart(t, ts.URL, "PUT", fmt.Sprintf("/Dog/%d", dog.ID), map[string]string{
			"name": "Luna", "race": "Beagle", "ownerID": "1",
		}, "image", "luna.gif", "image/gif", gif)
		if st != http.StatusOK || !strings.Contains(string(body), `"imageContentType":"image/gif"`) {
			t.Fatalf("expected 200 replace image, got %d body=%s", st, string(body))
		}
		if n := countFiles(t, dir); n != 1 {
			t.Fatalf("expected old image removed, got %d files", n)
		}
	}

	// Delete borra la imagen
	{
		st, body, _ := doJSON(t, ts.URL, "DELETE", fmt.Sprintf("/Dog/%d", dog.ID), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete dog, got %d body=%s", st, string(body))
		}
		if n := countFiles(t, dir); n != 0 {
			t.Fatalf("expected image removed, got %d files", n)
		}
		st, _, _ = doJSON(t, ts.URL, "GET", fmt.Sprintf("/Dog/image/%d", dog.ID), nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 image after delete, got %d", st)
		}
	}
}

func TestHTTP_DogImage_Rejected(t *testing.T) {
	ts, dir := newServer(t, router.Options{MaxImageBytes: 1024})

	cases := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{"tipo no permitido", "text/plain", []byte("hello")},
		{"contenido no coincide", "image/gif", pngBytes},
		{"demasiado grande", "image/png", append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 2048)...)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doMultipart(t, ts.URL, "POST", "/Dog", map[string]string{
				"name": "Max", "race": "Pug",
			}, "image", "max.bin", tc.contentType, tc.data)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
		})
	}

	_, body, _ := doJSON(t, ts.URL, "GET", "/Dog", nil)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("dog was persisted: %s", string(body))
	}
	if n := countFiles(t, dir); n != 0 {
		t.Fatalf("expected no image files, got %d", n)
	}
}

func TestHTTP_DogImage_UpdateRejected(t *testing.T) {
	ts, dir := newServer(t, router.Options{MaxImageBytes: 1024})

	st, created := doMultipart(t, ts.URL, "POST", "/Dog", map[string]string{
		"name": "Rex", "race": "Labrador", "ownerID": "1",
	}, "image", "rex.png", "image/png", pngBytes)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(created))
	}
	var dog struct {
		ID        int    `json:"id"`
		ImagePath string `json:"imagePath"`
	}
	_ = json.Unmarshal(created, &dog)

	cases := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{"tipo no permitido", "text/plain", []byte("hello")},
		{"demasiado grande", "image/png", append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 2048)...)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doMultipart(t, ts.URL, "PUT", fmt.Sprintf("/Dog/%d", dog.ID), map[string]string{
				"name": "Max", "race": "Pug", "ownerID": "2",
			}, "image", "max.bin", tc.contentType, tc.data)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}

			st, body, _ = doJSON(t, ts.URL, "GET", fmt.Sprintf("/Dog/%d", dog.ID), nil)
			if st != http.StatusOK {
				t.Fatalf("expected 200 get dog, got %d", st)
			}
			if !bytes.Equal(bytes.TrimSpace(body), bytes.TrimSpace(created)) {
				t.Fatalf("dog was modified: %s", string(body))
			}
			if n := countFiles(t, dir); n != 1 {
				t.Fatalf("expected only the original image, got %d files", n)
			}
			if _, err := os.Stat(filepath.Join(dir, dog.ImagePath)); err != nil {
				t.Fatalf("original image missing: %v", err)
			}
		})
	}
}

func TestHTTP_DogImage_NotFound(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	st, _, _ := doJSON(t, ts.URL, "GET", "/Dog/image/999", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}

	// Perro sin imagen
	st, body, _ := doJSON(t, ts.URL, "POST", "/Dog", map[string]any{"name": "Toby", "race": "Mestizo"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	st, _, _ = doJSON(t, ts.URL, "GET", "/Dog/image/1", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for dog without image, got %d", st)
	}
}

func TestHTTP_Dashboard(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	st, body, _ := doJSON(t, ts.URL, "POST", "/Dog", map[string]any{"name": "Rex", "race": "Labrador"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	today := time.Now().Format("2006-01-02")
	for _, hour := range []string{"16:00", "09:15"} {
		st, body, _ := doJSON(t, ts.URL, "POST", "/Treatment", map[string]any{
			"description": "Consulta " + hour, "date": today, "time": hour, "cost": 20, "dogID": 1,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
	}

	st, body, _ = doJSON(t, ts.URL, "GET", "/Dashboard", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
	}
	var s struct {
		TotalDogs        int `json:"totalDogs"`
		TotalTreatments  int `json:"totalTreatments"`
		TodaysTreatments []struct {
			Time string `json:"time"`
		} `json:"todaysTreatments"`
		NextAppointment *struct {
			Time string `json:"time"`
		} `json:"nextAppointment"`
	}
	_ = json.Unmarshal(body, &s)
	if s.TotalDogs != 1 || s.TotalTreatments != 2 || len(s.TodaysTreatments) != 2 {
		t.Fatalf("unexpected summary: %s", string(body))
	}
	if s.TodaysTreatments[0].Time != "09:15:00" {
		t.Fatalf("today's treatments not sorted by time: %s", string(body))
	}
	if s.NextAppointment == nil || s.NextAppointment.Time != "09:15:00" {
		t.Fatalf("unexpected next appointment: %s", string(body))
	}
}

func TestHTTP_CORSPreflight(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/Dog", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

func TestHTTP_TokenAuth(t *testing.T) {
	ts, _ := newServer(t, router.Options{AuthVerifier: apitoken.New("s3cret")})

	st, _, _ := doJSON(t, ts.URL, "GET", "/Dog", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/Dog", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", resp.StatusCode)
	}

	// health y metrics quedan abiertos
	for _, p := range []string{"/health", "/metrics"} {
		st, _, _ := doJSON(t, ts.URL, "GET", p, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s without token, got %d", p, st)
		}
	}
}

func TestHTTP_Metrics(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	_, _, _ = doJSON(t, ts.URL, "GET", "/Dog/42", nil)

	st, body, _ := doJSON(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), `http_requests_total{method="GET",route="/Dog/{id}",status="404"} 1`) {
		t.Fatalf("expected request counter for /Dog/{id}, got:\n%s", string(body))
	}
}

func ownerPayload(firstName string) map[string]any {
	return map[string]any{
		"firstName":  firstName,
		"lastName":   "Pérez",
		"email":      strings.ToLower(firstName) + "@example.com",
		"phone":      "+51 999 111 222",
		"address":    "Av. Siempre Viva 742",
		"city":       "Lima",
		"postalCode": "15001",
		"country":    "PE",
	}
}

func createOwner(t *testing.T, baseURL, firstName string) int {
	t.Helper()

	st, body, _ := doJSON(t, baseURL, "POST", "/Owner", ownerPayload(firstName))
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create owner, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID int `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("create owner: missing id body=%s", string(body))
	}
	return resp.ID
}

func doJSON(t *testing.T, baseURL, method, path string, payload any) (int, []byte, http.Header) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, resp.Header
}

func doMultipart(t *testing.T, baseURL, method, path string, fields map[string]string, fileField, filename, contentType string, data []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write(data)
	_ = mw.Close()

	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return len(entries)
}
