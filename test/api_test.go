package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/api"
	"github.com/victorsuarez3/hangovershield-sub001/internal/auth"
	"github.com/victorsuarez3/hangovershield-sub001/internal/billing"
	"github.com/victorsuarez3/hangovershield-sub001/internal/checkin"
	"github.com/victorsuarez3/hangovershield-sub001/internal/config"
	"github.com/victorsuarez3/hangovershield-sub001/internal/notify"
	"github.com/victorsuarez3/hangovershield-sub001/internal/storage"
)

const testSecret = "test-secret"

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Env:               "development",
		LogLevel:          "debug",
		CheckinsFile:      dir + "/checkins.json",
		SubscriptionsFile: dir + "/subscriptions.json",
		RemoteBackend:     "none",
		JWTSecret:         testSecret,
		WelcomeWindow:     24 * time.Hour,
		DefaultTimezone:   "UTC",
	}
}

// setupRouter wires the full stack in local-only mode: file-backed local
// cache, file subscription store, no Stripe client, JWT auth.
func setupRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *checkin.Store, storage.SubscriptionRepository) {
	gin.SetMode(gin.TestMode)
	logger := internal.NewLogger("development", "debug")

	local, err := checkin.NewLocalCache(cfg.CheckinsFile, logger)
	require.NoError(t, err)
	store := checkin.NewStore(local, nil, notify.NewLogScheduler(logger), logger)
	t.Cleanup(func() { _ = store.Close() })

	subs, err := storage.NewFileSubscriptionStore(cfg.SubscriptionsFile, logger)
	require.NoError(t, err)
	billingSvc := billing.NewService(nil, subs, logger)

	app := api.NewApplication(cfg, logger, store, billingSvc)
	provider := auth.NewJWTAuthProvider(cfg.JWTSecret, logger)
	return api.NewRouter(app, cfg, provider), store, subs
}

func issueToken(t *testing.T, user *internal.User) string {
	logger := internal.NewLogger("development", "debug")
	token, err := auth.NewJWTAuthProvider(testSecret, logger).IssueToken(user, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCheckInDayFlow(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	token := issueToken(t, &internal.User{ID: "u1", Name: "Test User", FirstSeenAt: time.Now()})
	day := internal.DayID(time.Now(), time.UTC)

	// First check-in of the day creates the record and its plan.
	w := doJSON(r, "POST", "/api/checkins", token, `{"level":"severe","symptoms":["nausea","headache"]}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, day, data["id"])
	plan := data["generated_plan"].(map[string]any)
	steps := plan["steps"].([]any)
	assert.Len(t, steps, 6)
	assert.Equal(t, 2.0, plan["hydration_goal_liters"])

	// A second submission with different input returns the same record; the
	// first plan of the day wins.
	w = doJSON(r, "POST", "/api/checkins", token, `{"level":"mild","symptoms":["noSymptoms"]}`)
	require.Equal(t, 200, w.Code)
	again := decodeData(t, w)
	assert.Equal(t, "severe", again["level"])
	assert.Len(t, again["generated_plan"].(map[string]any)["steps"].([]any), 6)

	// Toggle a step, check progress moves.
	w = doJSON(r, "PATCH", "/api/checkins/"+day+"/steps/hydrate_electrolytes", token, `{"completed":true}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	w = doJSON(r, "GET", "/api/checkins/today/progress", token, "")
	require.Equal(t, 200, w.Code)
	progress := decodeData(t, w)
	assert.Equal(t, 1.0, progress["completed_count"])
	assert.Equal(t, 6.0, progress["total_count"])
	assert.Equal(t, false, progress["plan_completed"])

	// Unknown step id is a 404, not a silent write.
	w = doJSON(r, "PATCH", "/api/checkins/"+day+"/steps/cold_plunge", token, `{"completed":true}`)
	assert.Equal(t, 404, w.Code)

	// Explicit completion with steps still outstanding.
	w = doJSON(r, "POST", "/api/checkins/"+day+"/complete", token, `{"steps_completed":1,"total_steps":6}`)
	require.Equal(t, 200, w.Code)
	done := decodeData(t, w)
	assert.NotNil(t, done["completed_at"])

	w = doJSON(r, "GET", "/api/checkins", token, "")
	require.Equal(t, 200, w.Code)
	var hist struct {
		Data []map[string]any `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hist))
	assert.Len(t, hist.Data, 1)
	assert.Equal(t, 1.0, hist.Meta["count"])
}

func TestCheckInValidation(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	token := issueToken(t, &internal.User{ID: "u1", FirstSeenAt: time.Now()})

	w := doJSON(r, "POST", "/api/checkins", token, `{"level":"apocalyptic"}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, "POST", "/api/checkins", token, `{"symptoms":["nausea"]}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, "POST", "/api/checkins", token, `{"level":"mild","symptoms":["noSymptoms","headache"]}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, "POST", "/api/checkins", token, `not json`)
	assert.Equal(t, 400, w.Code)
}

func TestGetTodayWithoutCheckIn(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	token := issueToken(t, &internal.User{ID: "u1", FirstSeenAt: time.Now()})

	w := doJSON(r, "GET", "/api/checkins/today", token, "")
	assert.Equal(t, 404, w.Code)
}

func TestUnauthorized(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))

	w := doJSON(r, "GET", "/api/checkins/today", "", "")
	assert.Equal(t, 401, w.Code)

	w = doJSON(r, "GET", "/api/checkins/today", "garbage-token", "")
	assert.Equal(t, 401, w.Code)
}

func TestPlanPreviewDoesNotPersist(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	token := issueToken(t, &internal.User{ID: "u1", FirstSeenAt: time.Now()})

	w := doJSON(r, "POST", "/api/plan/preview", token, `{"level":"moderate","symptoms":["nausea"]}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	preview := decodeData(t, w)
	assert.Equal(t, 1.5, preview["hydration_goal_liters"])
	assert.Len(t, preview["steps"].([]any), 6)

	// The preview is stateless; there is still no record for today.
	w = doJSON(r, "GET", "/api/checkins/today", token, "")
	assert.Equal(t, 404, w.Code)
}

func TestAccessTiers(t *testing.T) {
	t.Run("new user is in the welcome window", func(t *testing.T) {
		r, _, _ := setupRouter(t, testConfig(t))
		token := issueToken(t, &internal.User{ID: "u-new", FirstSeenAt: time.Now().Add(-1 * time.Hour)})

		w := doJSON(r, "GET", "/api/access", token, "")
		require.Equal(t, 200, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, "welcome", data["tier"])
		assert.Equal(t, true, data["has_full_access"])
	})

	t.Run("window elapsed without subscription is free", func(t *testing.T) {
		r, _, _ := setupRouter(t, testConfig(t))
		token := issueToken(t, &internal.User{ID: "u-old", FirstSeenAt: time.Now().Add(-48 * time.Hour)})

		w := doJSON(r, "GET", "/api/access", token, "")
		require.Equal(t, 200, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, "free", data["tier"])
		assert.Equal(t, false, data["has_full_access"])
	})

	t.Run("active subscription is premium regardless of age", func(t *testing.T) {
		cfg := testConfig(t)
		r, _, subs := setupRouter(t, cfg)
		require.NoError(t, subs.PutSubscription(context.Background(), &internal.Subscription{
			UserID:    "u-sub",
			Active:    true,
			UpdatedAt: time.Now(),
		}))
		token := issueToken(t, &internal.User{ID: "u-sub", FirstSeenAt: time.Now().Add(-30 * 24 * time.Hour)})

		w := doJSON(r, "GET", "/api/access", token, "")
		require.Equal(t, 200, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, "premium", data["tier"])
	})
}

func TestAccessSections(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	token := issueToken(t, &internal.User{ID: "u-free", FirstSeenAt: time.Now().Add(-48 * time.Hour)})

	w := doJSON(r, "GET", "/api/access/sections", token, "")
	require.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	sections := data["sections"].(map[string]any)
	assert.Equal(t, "full", sections["recovery_plan_morning"])
	assert.Equal(t, "soft", sections["hydration_detail"])
	assert.Equal(t, "locked", sections["insights_history"])
}

func TestCheckoutWithoutStripe(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	token := issueToken(t, &internal.User{ID: "u1", FirstSeenAt: time.Now()})

	w := doJSON(r, "POST", "/api/billing/checkout", token,
		`{"success_url":"https://app.example.com/ok","cancel_url":"https://app.example.com/no"}`)
	assert.Equal(t, 500, w.Code)
}

func TestRestoreWithoutSubscription(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	token := issueToken(t, &internal.User{ID: "u1", FirstSeenAt: time.Now()})

	w := doJSON(r, "POST", "/api/billing/restore", token, "")
	require.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["subscription_active"])
}

func TestHealthz(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))
	w := doJSON(r, "GET", "/healthz", "", "")
	assert.Equal(t, 200, w.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	r, _, _ := setupRouter(t, testConfig(t))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = doJSON(r, "GET", "/healthz", "", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

// TestLocalCacheSurvivesRestart drives the HTTP surface across two router
// instances sharing a cache file, mimicking an app restart mid-day.
func TestLocalCacheSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	user := &internal.User{ID: "u1", FirstSeenAt: time.Now()}
	token := issueToken(t, user)
	day := internal.DayID(time.Now(), time.UTC)

	r1, store1, _ := setupRouter(t, cfg)
	w := doJSON(r1, "POST", "/api/checkins", token, `{"level":"mild","symptoms":["headache"]}`)
	require.Equal(t, 200, w.Code)
	w = doJSON(r1, "PATCH", "/api/checkins/"+day+"/steps/short_walk", token, `{"completed":true}`)
	require.Equal(t, 200, w.Code)
	require.NoError(t, store1.Close())

	r2, _, _ := setupRouter(t, cfg)
	w = doJSON(r2, "GET", "/api/checkins/today", token, "")
	require.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "mild", data["level"])
	state := data["steps_state"].(map[string]any)
	assert.Equal(t, true, state["short_walk"])
}
