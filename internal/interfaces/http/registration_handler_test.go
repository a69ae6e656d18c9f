package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Embudos-api/internal/application/registration"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Embudos-api/internal/interfaces/http"
	"github.com/jhoicas/Embudos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: solo lo que toca el handler de iniciar registro
// ──────────────────────────────────────────────────────────────────────────────

type stubAccountRepo struct {
	byEmail map[string]*entity.Account
}

func (s *stubAccountRepo) Create(*entity.Account) error { return nil }
func (s *stubAccountRepo) GetByID(string) (*entity.Account, error) {
	return nil, nil
}
func (s *stubAccountRepo) GetByEmail(email string) (*entity.Account, error) {
	return s.byEmail[email], nil
}
func (s *stubAccountRepo) Update(*entity.Account) error { return nil }
func (s *stubAccountRepo) ListByBusiness(string, int, int) ([]*entity.Account, error) {
	return nil, nil
}

type stubVerificationRepo struct {
	byEmail map[string]*entity.EmailVerification
}

func (s *stubVerificationRepo) GetByEmail(email string) (*entity.EmailVerification, error) {
	return s.byEmail[email], nil
}
func (s *stubVerificationRepo) Upsert(v *entity.EmailVerification) error {
	s.byEmail[v.Email] = v
	return nil
}
func (s *stubVerificationRepo) GetActive(string, string, time.Time) (*entity.EmailVerification, error) {
	return nil, nil
}
func (s *stubVerificationRepo) MarkVerified(string, time.Time) error { return nil }

type stubMailer struct{ sent int }

func (m *stubMailer) SendVerificationCode(string, string) error { m.sent++; return nil }
func (m *stubMailer) SendWelcome(string, string, string) error  { return nil }

func buildRegistrationApp(t *testing.T, accounts *stubAccountRepo, verifications *stubVerificationRepo, mailer *stubMailer) *fiber.App {
	t.Helper()
	uc := registration.NewRegistrationUseCase(
		accounts, verifications, nil, mailer, mailer,
		registration.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer, SessionDays: 7},
		registration.Config{Cooldown: 180 * time.Second, CodeTTL: 30 * time.Minute},
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	app := fiber.New()
	handler := apphttp.NewRegistrationHandler(uc)
	app.Post("/api/auth/initiate-registration", handler.Initiate)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del mapeo de errores HTTP de iniciar registro
// ──────────────────────────────────────────────────────────────────────────────

func TestInitiateRegistration_EmailNuevo_Retorna200(t *testing.T) {
	accounts := &stubAccountRepo{byEmail: map[string]*entity.Account{}}
	verifications := &stubVerificationRepo{byEmail: map[string]*entity.EmailVerification{}}
	mailer := &stubMailer{}
	app := buildRegistrationApp(t, accounts, verifications, mailer)

	resp := postJSON(t, app, "/api/auth/initiate-registration", `{"email":"nuevo@acme.test"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, mailer.sent, "debe despacharse exactamente un correo con el código")
	require.NotNil(t, verifications.byEmail["nuevo@acme.test"], "debe persistirse la fila de verificación")
}

func TestInitiateRegistration_EmailRegistrado_Retorna409(t *testing.T) {
	accounts := &stubAccountRepo{byEmail: map[string]*entity.Account{
		"dueno@acme.test": {ID: "1", Email: "dueno@acme.test", Status: entity.StatusActive},
	}}
	verifications := &stubVerificationRepo{byEmail: map[string]*entity.EmailVerification{}}
	app := buildRegistrationApp(t, accounts, verifications, &stubMailer{})

	resp := postJSON(t, app, "/api/auth/initiate-registration", `{"email":"dueno@acme.test"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "EMAIL_EXISTS", body["code"])
}

// El cooldown viaja como 429 con wait_seconds en el cuerpo.
func TestInitiateRegistration_Cooldown_Retorna429ConEspera(t *testing.T) {
	accounts := &stubAccountRepo{byEmail: map[string]*entity.Account{}}
	verifications := &stubVerificationRepo{byEmail: map[string]*entity.EmailVerification{
		// Código emitido hace 60s: restan 120s de cooldown
		"pronto@acme.test": {
			Email:     "pronto@acme.test",
			Code:      "123456",
			ExpiresAt: time.Now().Add(29 * time.Minute),
			CreatedAt: time.Now().Add(-60 * time.Second),
		},
	}}
	mailer := &stubMailer{}
	app := buildRegistrationApp(t, accounts, verifications, mailer)

	resp := postJSON(t, app, "/api/auth/initiate-registration", `{"email":"pronto@acme.test"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, 0, mailer.sent, "durante el cooldown no debe reenviarse código")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "COOLDOWN", body["code"])
	wait, ok := body["wait_seconds"].(float64)
	require.True(t, ok, "el cuerpo debe incluir wait_seconds")
	assert.InDelta(t, 120, wait, 2, "los segundos de espera deben ser ~120")
}

func TestInitiateRegistration_SinEmail_Retorna400(t *testing.T) {
	accounts := &stubAccountRepo{byEmail: map[string]*entity.Account{}}
	verifications := &stubVerificationRepo{byEmail: map[string]*entity.EmailVerification{}}
	app := buildRegistrationApp(t, accounts, verifications, &stubMailer{})

	resp := postJSON(t, app, "/api/auth/initiate-registration", `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

var _ repository.AccountRepository = (*stubAccountRepo)(nil)
var _ repository.VerificationRepository = (*stubVerificationRepo)(nil)
