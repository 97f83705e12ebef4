package routes

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/entreplan/planner/internal/auth"
	"github.com/entreplan/planner/internal/config"
	"github.com/entreplan/planner/internal/logging"
	"github.com/entreplan/planner/internal/planner"
	"github.com/entreplan/planner/internal/qr"
	"github.com/entreplan/planner/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const testPayload = `{"EtsyPlannerURL":"https://etsy.com/shop/x","AILesson":"Batch your captions","trends":["#smallbiz","cozy vibes"]}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testToken(sub string) string {
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	s, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	return s
}

func addAuthHeader(req *http.Request, userID string) {
	req.Header.Set("Authorization", "Bearer "+testToken(userID))
}

func setupTestHandler(t *testing.T) *chi.Mux {
	t.Helper()

	router := chi.NewRouter()
	router.Use(logging.RequestLogger(testLogger()))
	router.Group(RegisterPlannerRoutes(auth.AuthConfig{
		Secret:              "",
		AllowUnsignedTokens: true,
	}, config.RateLimitConfig{}, PlannerDeps{
		Sessions:        session.NewStore(),
		Decoder:         qr.ZXingDecoder{},
		DefaultPlatform: planner.DefaultPlatform,
	}))

	return router
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if userID != "" {
		addAuthHeader(req, userID)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func planRequestBody() map[string]any {
	return map[string]any{
		"payload": json.RawMessage(testPayload),
		"week_of": "2024-01-03",
	}
}

func TestPlannerRoutes_GeneratePlan(t *testing.T) {
	router := setupTestHandler(t)

	rr := doJSON(t, router, "POST", "/api/v1/plans", planRequestBody(), "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp struct {
		WeekStart string `json:"week_start"`
		Platform  string `json:"platform"`
		Days      []struct {
			Date  string `json:"date"`
			Theme string `json:"theme"`
		} `json:"days"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.WeekStart != "2024-01-01" {
		t.Errorf("week_start = %q, want 2024-01-01 (Wednesday must snap to Monday)", resp.WeekStart)
	}
	if len(resp.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(resp.Days))
	}
	if resp.Days[0].Date != "2024-01-01" || resp.Days[6].Date != "2024-01-07" {
		t.Errorf("days run %s..%s, want 2024-01-01..2024-01-07", resp.Days[0].Date, resp.Days[6].Date)
	}
	if resp.Days[0].Theme != "Motivation Monday" {
		t.Errorf("first theme = %q, want Motivation Monday", resp.Days[0].Theme)
	}
}

func TestPlannerRoutes_GeneratePlanDeterministic(t *testing.T) {
	router := setupTestHandler(t)

	first := doJSON(t, router, "POST", "/api/v1/plans", planRequestBody(), "user1")
	second := doJSON(t, router, "POST", "/api/v1/plans", planRequestBody(), "user1")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses %d/%d, want 200/200", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("identical requests returned different plan bodies")
	}
}

func TestPlannerRoutes_GeneratePlanUnauthorized(t *testing.T) {
	router := setupTestHandler(t)

	rr := doJSON(t, router, "POST", "/api/v1/plans", planRequestBody(), "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d. Body: %s", http.StatusUnauthorized, rr.Code, rr.Body.String())
	}
}

func TestPlannerRoutes_GeneratePlanValidation(t *testing.T) {
	router := setupTestHandler(t)

	tests := []struct {
		name    string
		body    map[string]any
		wantErr string
	}{
		{
			name:    "missing week_of",
			body:    map[string]any{"payload": json.RawMessage(testPayload)},
			wantErr: "week_of is required",
		},
		{
			name:    "payload missing required keys",
			body:    map[string]any{"payload": json.RawMessage(`{"trends":[]}`), "week_of": "2024-01-01"},
			wantErr: "EtsyPlannerURL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, "POST", "/api/v1/plans", tt.body, "user1")
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d. Body: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
			}
			var resp map[string]string
			json.Unmarshal(rr.Body.Bytes(), &resp)
			if !strings.Contains(resp["error"], tt.wantErr) {
				t.Errorf("error %q does not mention %q", resp["error"], tt.wantErr)
			}
		})
	}
}

func TestPlannerRoutes_ExportPlan(t *testing.T) {
	router := setupTestHandler(t)

	rr := doJSON(t, router, "POST", "/api/v1/plans/export", planRequestBody(), "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "weekly_prompts_2024-01-01.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rows, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv body: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("expected 8 csv rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][7] != "Tools" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "2024-01-01" || rows[7][0] != "2024-01-07" {
		t.Errorf("date column runs %s..%s", rows[1][0], rows[7][0])
	}
}

func TestPlannerRoutes_GenerateQR(t *testing.T) {
	router := setupTestHandler(t)

	body := map[string]any{
		"destination_url": "https://shop.example.com/planner",
		"payload":         testPayload,
	}
	rr := doJSON(t, router, "POST", "/api/v1/qr", body, "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp struct {
		FinalURL  string `json:"final_url"`
		PNGBase64 string `json:"png_base64"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	for _, param := range []string{"utm_source=planner", "utm_medium=qr", "utm_campaign=planner_qr", "payload="} {
		if !strings.Contains(resp.FinalURL, param) {
			t.Errorf("final_url %q missing %q", resp.FinalURL, param)
		}
	}
	png, err := base64.StdEncoding.DecodeString(resp.PNGBase64)
	if err != nil || len(png) == 0 {
		t.Fatalf("png_base64 is not valid base64: %v", err)
	}

	// Round-trip through the decode endpoint.
	decodeBody := map[string]any{"image_base64": resp.PNGBase64}
	rr = doJSON(t, router, "POST", "/api/v1/qr/decode", decodeBody, "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("decode: expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var decoded map[string]string
	json.Unmarshal(rr.Body.Bytes(), &decoded)
	if decoded["text"] != resp.FinalURL {
		t.Errorf("decoded text = %q, want %q", decoded["text"], resp.FinalURL)
	}
}

func TestPlannerRoutes_GenerateQRMissingDestination(t *testing.T) {
	router := setupTestHandler(t)

	rr := doJSON(t, router, "POST", "/api/v1/qr", map[string]any{"payload": "x"}, "user1")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d. Body: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPlannerRoutes_DecodeUnavailable(t *testing.T) {
	router := chi.NewRouter()
	router.Use(logging.RequestLogger(testLogger()))
	router.Group(RegisterPlannerRoutes(auth.AuthConfig{AllowUnsignedTokens: true}, config.RateLimitConfig{}, PlannerDeps{
		Sessions:        session.NewStore(),
		Decoder:         qr.UnavailableDecoder{},
		DefaultPlatform: planner.DefaultPlatform,
	}))

	body := map[string]any{"image_base64": base64.StdEncoding.EncodeToString([]byte("x"))}
	rr := doJSON(t, router, "POST", "/api/v1/qr/decode", body, "user1")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusServiceUnavailable, rr.Code, rr.Body.String())
	}
	var resp map[string]string
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["status"] != "unavailable" {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestPlannerRoutes_DecodeBadImage(t *testing.T) {
	router := setupTestHandler(t)

	body := map[string]any{"image_base64": base64.StdEncoding.EncodeToString([]byte("not an image"))}
	rr := doJSON(t, router, "POST", "/api/v1/qr/decode", body, "user1")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d. Body: %s", http.StatusUnprocessableEntity, rr.Code, rr.Body.String())
	}
}

func TestPlannerRoutes_Catalog(t *testing.T) {
	router := setupTestHandler(t)

	tests := []struct {
		path string
		want int
	}{
		{path: "/api/v1/catalog/templates", want: 8},
		{path: "/api/v1/catalog/automations", want: 8},
		{path: "/api/v1/catalog/platforms", want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := doJSON(t, router, "GET", tt.path, nil, "user1")
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
			}
			var items []any
			json.Unmarshal(rr.Body.Bytes(), &items)
			if len(items) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestPlannerRoutes_DemoTrends(t *testing.T) {
	router := setupTestHandler(t)

	rr := doJSON(t, router, "GET", "/api/v1/trends/demo?date=2024-12-02", nil, "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var resp struct {
		Trends []string `json:"trends"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if len(resp.Trends) == 0 {
		t.Error("expected a non-empty demo trend list")
	}

	rr = doJSON(t, router, "GET", "/api/v1/trends/demo?date=bogus", nil, "user1")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d for a bad date, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestPlannerRoutes_SessionPayloadFlow(t *testing.T) {
	router := setupTestHandler(t)

	// Nothing stored yet.
	rr := doJSON(t, router, "GET", "/api/v1/session/payload", nil, "user1")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusNotFound, rr.Code, rr.Body.String())
	}

	// Generating a plan remembers the payload.
	rr = doJSON(t, router, "POST", "/api/v1/plans", planRequestBody(), "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("plan setup failed: status %d, body: %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, router, "GET", "/api/v1/session/payload", nil, "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	// Another user sees nothing.
	rr = doJSON(t, router, "GET", "/api/v1/session/payload", nil, "user2")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d for another user, got %d", http.StatusNotFound, rr.Code)
	}

	// Explicit PUT replaces it; invalid payloads are rejected.
	rr = doJSON(t, router, "PUT", "/api/v1/session/payload", map[string]any{"payload": json.RawMessage(`{"trends":[]}`)}, "user1")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d for invalid payload, got %d. Body: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
	rr = doJSON(t, router, "PUT", "/api/v1/session/payload", map[string]any{"payload": json.RawMessage(testPayload)}, "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	// DELETE clears it.
	rr = doJSON(t, router, "DELETE", "/api/v1/session/payload", nil, "user1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	rr = doJSON(t, router, "GET", "/api/v1/session/payload", nil, "user1")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d after delete, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestPlannerRoutes_RateLimit(t *testing.T) {
	router := chi.NewRouter()
	router.Use(logging.RequestLogger(testLogger()))
	router.Group(RegisterPlannerRoutes(auth.AuthConfig{AllowUnsignedTokens: true},
		config.RateLimitConfig{Requests: 2, Window: time.Minute}, PlannerDeps{
			Sessions:        session.NewStore(),
			Decoder:         qr.UnavailableDecoder{},
			DefaultPlatform: planner.DefaultPlatform,
		}))

	var last int
	for i := 0; i < 3; i++ {
		rr := doJSON(t, router, "GET", "/api/v1/catalog/platforms", nil, "user1")
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request got %d, want %d", last, http.StatusTooManyRequests)
	}
}
