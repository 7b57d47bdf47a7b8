package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/care-scheduler/internal/analysis"
	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/medicine"
	"github.com/BruksfildServices01/care-scheduler/internal/handlers"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/session"
	ucAppointment "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/care-scheduler/internal/usecase/auth"
	ucConsultation "github.com/BruksfildServices01/care-scheduler/internal/usecase/consultation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type cannedModel struct {
	text string
	err  error
}

func (m cannedModel) Generate(context.Context, string) (string, error) {
	return m.text, m.err
}

type server struct {
	t      *testing.T
	engine *gin.Engine
	db     *store
	doc    models.Doctor
}

func newServer(t *testing.T, model cannedModel) *server {
	t.Helper()

	cfg := &config.Config{
		Env:               config.EnvDevelopment,
		JWTSecret:         "route-test-secret",
		JWTExpiresIn:      time.Hour,
		ClientURL:         "http://localhost:5173",
		Timezone:          "Asia/Kolkata",
		AnalyzeRateLimit:  3,
		AnalyzeRateWindow: time.Minute,
	}
	log := zap.NewNop()

	db := newStore()
	doc := models.Doctor{
		ID: uuid.New(), Name: "Dr. Priya Sharma", Specialty: "General Physician",
		Rating: 4.8, Available: true, Email: "priya.sharma@healthcare.com",
	}
	db.doctors = []models.Doctor{
		doc,
		{ID: uuid.New(), Name: "Dr. Rajesh Kumar", Specialty: "Cardiologist", Rating: 4.9, Available: true},
		{ID: uuid.New(), Name: "Dr. Arun Nair", Specialty: "Orthopedic Surgeon", Rating: 4.8, Available: false},
	}
	for i, name := range []string{"Azithral 500", "Crocin Advance", "Dolo 650", "Pan 40", "Zyrtec"} {
		db.medicines = append(db.medicines, models.Medicine{
			ID: uuid.New(), Name: name, Composition: fmt.Sprintf("Compound %d", i),
		})
	}

	issuer, err := session.NewIssuer(cfg)
	require.NoError(t, err)

	users := userRepo{db}
	doctors := doctorRepo{db}
	ledger := appointmentRepo{db}
	logbook := consultationRepo{db}
	gateway := analysis.NewGateway(model, log)
	nop := audit.Nop{}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:   cfg,
		Log:      log,
		Verifier: issuer,
		Users:    users,
		Limits:   limitStore{db},
		Health:   handlers.NewHealthHandler(cfg.Env),
		Auth: handlers.NewAuthHandler(
			ucAuth.NewRegister(users, issuer, nop, bcrypt.MinCost, false),
			ucAuth.NewLogin(users, issuer),
			ucAuth.NewMe(users),
			ucAuth.NewUpdateProfile(users, nop),
			activityRepo{db},
			log,
		),
		Doctors: handlers.NewDoctorHandler(
			doctors,
			ucAppointment.NewGetAvailability(ledger, doctors, cfg.Timezone),
			log,
		),
		Appointments: handlers.NewAppointmentHandler(
			ucAppointment.NewCreateAppointment(ledger, doctors, nop, cfg.Timezone),
			ucAppointment.NewListAppointments(ledger),
			ucAppointment.NewGetAppointment(ledger),
			ucAppointment.NewUpdateAppointment(ledger, nop, cfg.Timezone),
			ucAppointment.NewCancelAppointment(ledger, nop, cfg.Timezone),
			log,
		),
		AI: handlers.NewAIHandler(
			ucConsultation.NewAnalyze(gateway, logbook, nop),
			ucConsultation.NewListConsultations(logbook),
			ucConsultation.NewGetConsultation(logbook),
			gateway,
			log,
		),
		Medicines: handlers.NewMedicineHandler(medicineRepo{db}, log),
	})

	return &server{t: t, engine: r, db: db, doc: doc}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`

	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total *int64 `json:"total"`
}

func (s *server) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *server) register(email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha Verma", "email": email, "password": "secret1", "phone": "+91 98765 43210",
	})
	require.Equal(s.t, http.StatusCreated, code, env.Error)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func TestRegisterLoginBookList(t *testing.T) {
	s := newServer(t, cannedModel{})
	s.register("asha@example.com")

	code, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "asha@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, code)
	var login struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "asha@example.com", login.User.Email)
	assert.NotContains(t, string(env.Data), "password")

	code, env = s.do(http.MethodPost, "/api/appointments", login.Token, map[string]string{
		"doctorId": s.doc.ID.String(), "date": "2025-01-01", "time": "10:00 AM",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = s.do(http.MethodGet, "/api/appointments", login.Token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	var rows []struct {
		Status string `json:"status"`
		Date   string `json:"date"`
		Time   string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "pending", rows[0].Status)
	assert.Equal(t, "2025-01-01", rows[0].Date)
	assert.Equal(t, "10:00 AM", rows[0].Time)
}

func TestDuplicateRegistrationAndBadLogin(t *testing.T) {
	s := newServer(t, cannedModel{})
	s.register("asha@example.com")

	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha Two", "email": "ASHA@example.com", "password": "secret1", "phone": "1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User with this email already exists", env.Error)

	code, env = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "missing_fields", env.Code)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "asha@example.com", "password": "wrong-one",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Error)
}

func TestAppointmentLifecycleOverHTTP(t *testing.T) {
	s := newServer(t, cannedModel{})
	owner := s.register("owner@example.com")
	other := s.register("other@example.com")

	slot := map[string]string{"doctorId": s.doc.ID.String(), "date": "2025-02-14", "time": "3:00 PM"}
	code, env := s.do(http.MethodPost, "/api/appointments", owner, slot)
	require.Equal(t, http.StatusCreated, code)
	var ap models.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &ap))

	code, env = s.do(http.MethodPost, "/api/appointments", other, slot)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "This time slot is already booked", env.Error)

	path := "/api/appointments/" + ap.ID.String()

	code, _ = s.do(http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/appointments/not-a-uuid", owner, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodPut, path, owner, map[string]string{"notes": "carry reports"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "carry reports")

	code, env = s.do(http.MethodDelete, path, owner, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Appointment cancelled successfully", env.Message)

	code, env = s.do(http.MethodPut, path, owner, map[string]string{"notes": "again"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cannot update a completed or cancelled appointment", env.Error)

	// the cancelled slot is free again
	code, _ = s.do(http.MethodPost, "/api/appointments", other, slot)
	assert.Equal(t, http.StatusCreated, code)
}

func TestBookingErrors(t *testing.T) {
	s := newServer(t, cannedModel{})
	token := s.register("asha@example.com")

	code, _ := s.do(http.MethodPost, "/api/appointments", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodPost, "/api/appointments", token, map[string]string{
		"doctorId": uuid.NewString(), "date": "2025-01-01", "time": "9:00 AM",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Doctor not found", env.Error)

	code, env = s.do(http.MethodPost, "/api/appointments", token, map[string]string{
		"doctorId": s.db.doctors[2].ID.String(), "date": "2025-01-01", "time": "9:00 AM",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "doctor_unavailable", env.Code)
}

func TestDoctorDirectoryRoutes(t *testing.T) {
	s := newServer(t, cannedModel{})

	code, env := s.do(http.MethodGet, "/api/doctors?available=true", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, *env.Count)
	var docs []models.Doctor
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	assert.Equal(t, "Dr. Rajesh Kumar", docs[0].Name)

	code, env = s.do(http.MethodGet, "/api/doctors?specialty=all&search=CARDIO", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, *env.Count)

	code, env = s.do(http.MethodGet, "/api/doctors/meta/specialties", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["Cardiologist","General Physician","Orthopedic Surgeon"]`, string(env.Data))

	code, _ = s.do(http.MethodGet, "/api/doctors/"+s.doc.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/doctors/12345", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Doctor not found", env.Error)

	code, env = s.do(http.MethodGet, "/api/doctors/"+s.doc.ID.String()+"/availability?date=2025-01-01", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"time":"9:00 AM","booked":false`)
}

func TestAnalyzeAsGuestAndUser(t *testing.T) {
	model := cannedModel{text: "```json\n" + `{"aiAnalysis":"Common cold.","severity":"mild","seekEmergencyCare":false,` +
		`"ayurvedicMedicines":[{"name":"Tulsi","dosage":"5 leaves","timing":"Morning","duration":"5 days"}],` +
		`"allopathicMedicines":[{"name":"Paracetamol","dosage":"500mg","timing":"After meals","duration":"3 days"}]}` + "\n```"}
	s := newServer(t, model)

	code, env := s.do(http.MethodPost, "/api/ai/analyze", "", map[string]string{"symptoms": "flu"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "symptoms_too_short", env.Code)

	code, env = s.do(http.MethodPost, "/api/ai/analyze", "", map[string]string{"symptoms": "runny nose and sneezing"})
	require.Equal(t, http.StatusOK, code)
	var out struct {
		AIAnalysis string `json:"aiAnalysis"`
		Severity   string `json:"severity"`
		Disclaimer string `json:"disclaimer"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Common cold.", out.AIAnalysis)
	assert.Equal(t, "mild", out.Severity)
	assert.Equal(t, analysis.Disclaimer, out.Disclaimer)
	assert.True(t, s.db.consultations[0].IsGuest)

	token := s.register("asha@example.com")
	code, _ = s.do(http.MethodPost, "/api/ai/analyze", token, map[string]string{"symptoms": "runny nose and sneezing"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/ai/consultations", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, *env.Count)

	code, _ = s.do(http.MethodGet, "/api/ai/consultations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAnalyzeIsRateLimited(t *testing.T) {
	s := newServer(t, cannedModel{err: assert.AnError})

	for i := 0; i < 3; i++ {
		code, env := s.do(http.MethodPost, "/api/ai/analyze", "", map[string]string{"symptoms": "mild fever at night"})
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(env.Data), "Unable to analyze symptoms at this time.")
	}
	code, env := s.do(http.MethodPost, "/api/ai/analyze", "", map[string]string{"symptoms": "mild fever at night"})
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "rate_limited", env.Code)
}

func TestAIHealthReportsConnectivity(t *testing.T) {
	up := newServer(t, cannedModel{text: "OK"})
	req := httptest.NewRequest(http.MethodGet, "/api/ai/health", nil)
	rec := httptest.NewRecorder()
	up.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"externalServiceConnected":true`)
	assert.Contains(t, rec.Body.String(), `"status":"operational"`)

	down := newServer(t, cannedModel{err: assert.AnError})
	rec = httptest.NewRecorder()
	down.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/health", nil))
	assert.Contains(t, rec.Body.String(), `"externalServiceConnected":false`)
}

func TestMedicineCatalogPagination(t *testing.T) {
	s := newServer(t, cannedModel{})

	code, env := s.do(http.MethodGet, "/api/medicines?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Medicines      []models.Medicine `json:"medicines"`
		CurrentPage    int               `json:"currentPage"`
		TotalPages     int               `json:"totalPages"`
		TotalMedicines int64             `json:"totalMedicines"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 5, page.TotalMedicines)
	require.Len(t, page.Medicines, 2)
	assert.Equal(t, "Dolo 650", page.Medicines[0].Name)

	code, env = s.do(http.MethodGet, "/api/medicines?query=compound%203", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Medicines, 1)
	assert.Equal(t, "Pan 40", page.Medicines[0].Name)

	code, env = s.do(http.MethodGet, "/api/medicines?page=9223372036854775807&limit=100", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, medicine.MaxPage, page.CurrentPage)
	assert.Empty(t, page.Medicines)

	code, _ = s.do(http.MethodGet, "/api/medicines/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newServer(t, cannedModel{})

	code, env := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "OUR-D-at-YOUR-D API is running", env.Message)

	code, env = s.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Not Found - /api/nowhere", env.Error)
}

func TestProfileRoutes(t *testing.T) {
	s := newServer(t, cannedModel{})
	token := s.register("asha@example.com")

	code, env := s.do(http.MethodPut, "/api/auth/update", token, map[string]string{"name": "Asha V"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"name":"Asha V"`)

	code, env = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"email":"asha@example.com"`)

	code, env = s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, no token provided", env.Error)
}

func TestActivityRoute(t *testing.T) {
	s := newServer(t, cannedModel{})
	token := s.register("asha@example.com")

	code, _ := s.do(http.MethodGet, "/api/auth/activity", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodGet, "/api/auth/activity?page=0&limit=500", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Page)
	assert.Equal(t, audit.MaxPageSize, env.Limit)
	require.NotNil(t, env.Total)
	assert.EqualValues(t, 1, *env.Total)

	var rows []models.AuditLog
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "user_registered", rows[0].Action)

	code, env = s.do(http.MethodGet, "/api/auth/activity?action=appointment_created", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(env.Data))
}
