package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"academy-enrollment-api/internal/cache"
	"academy-enrollment-api/internal/catalog"
	"academy-enrollment-api/internal/database"
	"academy-enrollment-api/internal/middleware"
	"academy-enrollment-api/internal/models"
	"academy-enrollment-api/internal/service"
)

const testAdminToken = "test-admin-token"

func setupTestRouter(t *testing.T) (*chi.Mux, *database.DB, func()) {
	dbPath := "./test_handler_" + uuid.New().String() + ".db"
	db, err := database.NewDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	tokenAuth := middleware.NewTokenAuth("test-secret", time.Hour)
	svc := service.NewService(db, cache.NewInMemoryCache(), nil, nil, nil, tokenAuth.Sign)
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(tokenAuth.WithAuth)

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/programs", h.ListPrograms)
	r.Get("/programs/{program_id}", h.GetProgram)
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/quiz", h.SubmitQuiz)
		r.Get("/profile", h.GetProfile)
		r.Post("/enrollment", h.CreateEnrollment)
		r.Get("/enrollment", h.ListEnrollments)
		r.Post("/referral", h.TrackReferral)
		r.Get("/referral", h.GetReferralStats)
		r.Get("/cohorts/next", h.NextCohort)
		r.Get("/curriculum/{program_id}", h.GetCurriculum)
		r.Post("/progress", h.SaveProgress)
		r.Get("/cohort/feed", h.GetCohortFeed)
		r.Post("/cohort/feed", h.PostCohortMessage)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminOnly(testAdminToken))
		r.Get("/overview", h.AdminOverview)
		r.Post("/cohorts", h.CreateCohort)
		r.Post("/referrals/{referral_id}/complete", h.CompleteReferral)
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return r, db, cleanup
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func registerUser(t *testing.T, r http.Handler) (string, string) {
	rr := doJSON(t, r, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    uuid.New().String() + "@example.com",
		Password: "password123",
		FullName: "Test Learner",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode auth response: %v", err)
	}
	return resp.Token, resp.UserID
}

func TestHealth(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(t, r, "GET", "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
}

func TestProtectedRoutes_UnauthorizedBody(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	for _, route := range []struct{ method, path string }{
		{"POST", "/quiz"},
		{"GET", "/profile"},
		{"POST", "/enrollment"},
		{"GET", "/enrollment"},
		{"POST", "/referral"},
		{"GET", "/referral"},
	} {
		rr := doJSON(t, r, route.method, route.path, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.path, rr.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s %s: failed to decode body: %v", route.method, route.path, err)
		}
		if body["error"] != "Unauthorized" {
			t.Errorf("%s %s: expected error 'Unauthorized', got %q", route.method, route.path, body["error"])
		}
	}
}

func TestProtectedRoutes_RejectGarbageToken(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(t, r, "GET", "/profile", "not-a-real-token", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for garbage token, got %d", rr.Code)
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(t, r, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    "flow@example.com",
		Password: "password123",
		FullName: "Flow Tester",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    "flow@example.com",
		Password: "password123",
		FullName: "Duplicate",
	})
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d", rr.Code)
	}

	rr = doJSON(t, r, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "flow@example.com",
		Password: "password123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 on login, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "flow@example.com",
		Password: "wrongpassword",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad password, got %d", rr.Code)
	}
}

func TestQuizAndProfile(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	token, userID := registerUser(t, r)

	rr := doJSON(t, r, "POST", "/quiz", token, map[string]interface{}{
		"name":           "Test Learner",
		"email":          "learner@example.com",
		"hours_per_week": "5 hours per week",
		"ai_exposure":    "Never used AI",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.QuizSubmitResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.UserID != userID {
		t.Errorf("Unexpected response: %+v", resp)
	}

	rr = doJSON(t, r, "GET", "/profile", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var view struct {
		Profile        models.Profile `json:"profile"`
		Recommendation struct {
			ProgramID string `json:"program_id"`
		} `json:"recommendation"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("Failed to decode profile view: %v", err)
	}
	if view.Recommendation.ProgramID != catalog.ProgramQuickStart {
		t.Errorf("Expected quick-start recommendation, got %s", view.Recommendation.ProgramID)
	}
}

func TestProfile_NotFound(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	token, _ := registerUser(t, r)

	rr := doJSON(t, r, "GET", "/profile", token, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before any quiz submission, got %d", rr.Code)
	}
}

func TestCreateEnrollment_ResponseShape(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	token, _ := registerUser(t, r)

	rr := doJSON(t, r, "POST", "/enrollment", token, models.EnrollmentRequest{
		ProgramID:     catalog.ProgramCoreMastery,
		PaymentMethod: models.PaymentMethodCard,
		Amount:        32,
		TransactionID: "txn_123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.EnrollmentResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.EnrollmentID == "" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Message != "Enrollment successful! Welcome to your program." {
		t.Errorf("Unexpected message: %q", resp.Message)
	}

	rr = doJSON(t, r, "GET", "/enrollment", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var list struct {
		Enrollments []models.EnrollmentDetail `json:"enrollments"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(list.Enrollments) != 1 {
		t.Errorf("Expected 1 enrollment, got %d", len(list.Enrollments))
	}
}

func TestCreateEnrollment_BadPaymentMethod(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	token, _ := registerUser(t, r)

	rr := doJSON(t, r, "POST", "/enrollment", token, models.EnrollmentRequest{
		ProgramID:     catalog.ProgramCoreMastery,
		PaymentMethod: "paypal",
		Amount:        32,
		TransactionID: "txn_123",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestReferralFlow(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	token, _ := registerUser(t, r)

	rr := doJSON(t, r, "POST", "/referral", token, models.ReferralRequest{
		ReferredUserID: uuid.New().String(),
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.ReferralResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Referral tracked!" {
		t.Errorf("Unexpected response: %+v", resp)
	}

	rr = doJSON(t, r, "GET", "/referral", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	for _, key := range []string{"totalReferrals", "successfulReferrals", "pendingReferrals", "availableBonuses"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in stats payload", key)
		}
	}

	var stats models.ReferralStatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.TotalReferrals != 1 || stats.PendingReferrals != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if len(stats.AvailableBonuses) != 1 {
		t.Errorf("Expected 1 bonus, got %d", len(stats.AvailableBonuses))
	}
}

func TestPrograms(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(t, r, "GET", "/programs", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var list struct {
		Programs []catalog.Program `json:"programs"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode programs: %v", err)
	}
	if len(list.Programs) != 3 {
		t.Errorf("Expected 3 programs, got %d", len(list.Programs))
	}

	rr = doJSON(t, r, "GET", "/programs/"+catalog.ProgramQuickStart, "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, r, "GET", "/programs/no-such-program", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

func TestNextCohortQuery(t *testing.T) {
	r, db, cleanup := setupTestRouter(t)
	defer cleanup()

	token, _ := registerUser(t, r)
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cohort := models.Cohort{
		ID:        uuid.New().String(),
		ProgramID: catalog.ProgramCoreMastery,
		StartDate: now.AddDate(0, 0, 5),
		Capacity:  30,
		CreatedAt: now,
	}
	if err := db.InsertCohort(cohort); err != nil {
		t.Fatalf("Failed to insert cohort: %v", err)
	}

	rr := doJSON(t, r, "GET", "/cohorts/next?program_id="+catalog.ProgramCoreMastery+"&now=2026-09-01T00:00:00Z", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Cohort *models.Cohort `json:"cohort"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Cohort == nil || resp.Cohort.ID != cohort.ID {
		t.Fatalf("Expected cohort %s, got %+v", cohort.ID, resp.Cohort)
	}

	// Past the cohort, none is scheduled: a null cohort, not an error.
	rr = doJSON(t, r, "GET", "/cohorts/next?program_id="+catalog.ProgramCoreMastery+"&now=2026-12-01T00:00:00Z", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	resp.Cohort = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Cohort != nil {
		t.Errorf("Expected null cohort, got %+v", resp.Cohort)
	}

	rr = doJSON(t, r, "GET", "/cohorts/next", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without program_id, got %d", rr.Code)
	}

	rr = doJSON(t, r, "GET", "/cohorts/next?program_id="+catalog.ProgramCoreMastery+"&now=tomorrow", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad now, got %d", rr.Code)
	}
}

func TestAdminRoutes_TokenGate(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/admin/overview", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without admin token, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/admin/overview", nil)
	req.Header.Set("X-Admin-Token", "wrong-token")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong admin token, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/admin/overview", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 with admin token, got %d: %s", rr.Code, rr.Body.String())
	}

	var overview models.AdminOverview
	if err := json.Unmarshal(rr.Body.Bytes(), &overview); err != nil {
		t.Fatalf("Failed to decode overview: %v", err)
	}
}

func TestAdminCompleteReferral(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	token, _ := registerUser(t, r)

	rr := doJSON(t, r, "POST", "/referral", token, models.ReferralRequest{
		ReferredUserID: uuid.New().String(),
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var created models.ReferralResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	req := httptest.NewRequest("POST", "/admin/referrals/"+created.ReferralID+"/complete", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rr = doJSON(t, r, "GET", "/referral", token, nil)
	var stats models.ReferralStatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.SuccessfulReferrals != 1 || stats.PendingReferrals != 0 {
		t.Errorf("Expected referral completed in stats, got %+v", stats)
	}

	req = httptest.NewRequest("POST", "/admin/referrals/"+uuid.New().String()+"/complete", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown referral, got %d", rec.Code)
	}
}

func TestSubmitQuiz_InvalidJSON(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	token, _ := registerUser(t, r)

	req := httptest.NewRequest("POST", "/quiz", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", rr.Code)
	}
}
