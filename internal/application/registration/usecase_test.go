package registration

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Embudos-api/pkg/jwt"
	"github.com/jhoicas/Embudos-api/pkg/logger"
)

const (
	testSecret = "secret-de-pruebas-registro"
	testIssuer = "embudos-crm-test"
	testEmail  = "a@b.com"
)

type testEnv struct {
	uc      *RegistrationUseCase
	acc     *fakeAccountRepo
	ver     *fakeVerificationRepo
	biz     *fakeBusinessRepo
	codes   *fakeCodeMailer
	welcome *fakeWelcomeMailer
	clock   time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		acc:     newFakeAccountRepo(),
		ver:     newFakeVerificationRepo(),
		biz:     newFakeBusinessRepo(),
		codes:   &fakeCodeMailer{},
		welcome: newFakeWelcomeMailer(),
		clock:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	tx := &fakeTxRunner{acc: env.acc, ver: env.ver, biz: env.biz}
	env.uc = NewRegistrationUseCase(
		env.acc, env.ver, tx, env.codes, env.welcome,
		JWTConfig{Secret: testSecret, Issuer: testIssuer, SessionDays: 7},
		Config{Cooldown: 180 * time.Second, CodeTTL: 30 * time.Minute},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	env.uc.now = func() time.Time { return env.clock }
	return env
}

// avanza mueve el reloj inyectado del caso de uso.
func (e *testEnv) avanza(d time.Duration) {
	e.clock = e.clock.Add(d)
}

func (e *testEnv) completeRequest(code string) dto.CompleteRegistrationRequest {
	return dto.CompleteRegistrationRequest{
		Email:     testEmail,
		Code:      code,
		Password:  "contraseña-segura",
		FirstName: "Ana",
		LastName:  "García",
		Phone:     "3001234567",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fase 1: Initiate
// ──────────────────────────────────────────────────────────────────────────────

// Un email con cuenta existente no puede iniciar registro.
func TestInitiate_EmailYaRegistrado(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.acc.Create(&entity.Account{ID: "u1", Email: testEmail}))

	err := env.uc.Initiate(testEmail)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, env.codes.sent(), "no debe enviarse ningún correo")
	assert.Equal(t, 0, env.ver.count())
}

// Inicio exitoso: fila única, código de 6 dígitos, vigencia 30 min, un solo envío.
func TestInitiate_GeneraCodigoYLoEnvia(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.uc.Initiate(testEmail))

	row, err := env.ver.GetByEmail(testEmail)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), row.Code, "código de ancho fijo, 6 dígitos")
	assert.False(t, row.IsVerified)
	assert.Equal(t, env.clock.Add(30*time.Minute), row.ExpiresAt)

	sends := env.codes.sent()
	require.Len(t, sends, 1, "exactamente un envío por llamada exitosa")
	assert.Equal(t, testEmail, sends[0].email)
	assert.Equal(t, row.Code, sends[0].code, "el código enviado es el persistido")
}

// Segundo intento dentro del cooldown: RateLimitError con los segundos
// restantes redondeados hacia arriba. Tras el cooldown se reemite sobre la
// misma fila (el conteo por email se mantiene en 1).
func TestInitiate_CooldownYReemision(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.uc.Initiate(testEmail))
	first, _ := env.ver.GetByEmail(testEmail)

	env.avanza(60 * time.Second)
	err := env.uc.Initiate(testEmail)
	rl, ok := domain.IsRateLimit(err)
	require.True(t, ok, "debe ser RateLimitError, fue: %v", err)
	assert.Equal(t, 120, rl.WaitSeconds)
	assert.Len(t, env.codes.sent(), 1, "el intento rechazado no envía correo")

	// 500ms después de cumplirse 1 minuto: la espera restante se redondea arriba
	env.avanza(-500 * time.Millisecond)
	err = env.uc.Initiate(testEmail)
	rl, ok = domain.IsRateLimit(err)
	require.True(t, ok)
	assert.Equal(t, 121, rl.WaitSeconds)
	env.avanza(500 * time.Millisecond)

	// Transcurrido el cooldown completo la reemisión procede
	env.avanza(120 * time.Second)
	require.NoError(t, env.uc.Initiate(testEmail))
	assert.Equal(t, 1, env.ver.count(), "la reemisión sobreescribe la fila, no inserta otra")

	second, _ := env.ver.GetByEmail(testEmail)
	assert.False(t, second.IsVerified)
	assert.Equal(t, env.clock, second.CreatedAt, "createdAt se refresca al reemitir")
	assert.True(t, second.ExpiresAt.After(first.ExpiresAt))
	assert.Len(t, env.codes.sent(), 2)
}

// Carrera documentada del cooldown: dos solicitudes casi simultáneas pueden
// pasar ambas el chequeo lectura-luego-escritura. El upsert por email garantiza
// que la fila nunca se duplica; al menos una solicitud gana.
func TestInitiate_CarreraCooldown(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	resultados := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resultados[i] = env.uc.Initiate(testEmail)
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range resultados {
		if err == nil {
			exitos++
		} else if _, ok := domain.IsRateLimit(err); !ok {
			t.Fatalf("error inesperado en la carrera: %v", err)
		}
	}
	assert.GreaterOrEqual(t, exitos, 1, "al menos una solicitud debe ganar")
	assert.Equal(t, 1, env.ver.count(), "aun con carrera la fila por email es única")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fase 2: Complete
// ──────────────────────────────────────────────────────────────────────────────

// Código que no coincide con ninguna fila activa: falla sin escribir nada.
func TestComplete_CodigoInvalido(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.uc.Initiate(testEmail))

	out, err := env.uc.Complete(context.Background(), env.completeRequest("999999"))
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)
	assert.Nil(t, out)
	assert.Equal(t, 0, env.acc.count(), "cero escrituras: no hay cuenta parcial")

	row, _ := env.ver.GetByEmail(testEmail)
	assert.False(t, row.IsVerified, "el código no debe quedar consumido")
}

// Código correcto pero emitido hace más de 30 minutos: expirado.
func TestComplete_CodigoExpirado(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.uc.Initiate(testEmail))
	code := env.codes.sent()[0].code

	env.avanza(31 * time.Minute)
	_, err := env.uc.Complete(context.Background(), env.completeRequest(code))
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)
	assert.Equal(t, 0, env.acc.count())
}

// Round-trip completo: iniciar, capturar el código, completar una vez.
// El mismo código no puede consumirse dos veces.
func TestComplete_RoundTripYCodigoDeUnSoloUso(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.uc.Initiate(testEmail))
	code := env.codes.sent()[0].code

	out, err := env.uc.Complete(context.Background(), env.completeRequest(code))
	require.NoError(t, err)
	require.NotNil(t, out)

	// La cuenta queda en PENDING_BUSINESS con el password hasheado (bcrypt)
	account, _ := env.acc.GetByEmail(testEmail)
	require.NotNil(t, account)
	assert.Equal(t, entity.StatusPendingBusiness, account.Status)
	assert.Empty(t, account.BusinessID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("contraseña-segura")))
	assert.NotEqual(t, "contraseña-segura", account.PasswordHash)

	// El código quedó consumido
	row, _ := env.ver.GetByEmail(testEmail)
	assert.True(t, row.IsVerified)
	require.NotNil(t, row.VerifiedAt)

	// La credencial emitida refleja la fase
	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, entity.StatusPendingBusiness, claims.Status)

	// Reutilizar el mismo código falla
	_, err = env.uc.Complete(context.Background(), env.completeRequest(code))
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)
}

// Si el marcado del código falla, la creación de la cuenta también se revierte:
// ambas escrituras son una sola transacción.
func TestComplete_EscriturasAtomicas(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.uc.Initiate(testEmail))
	code := env.codes.sent()[0].code

	env.ver.failMarkVerified = errors.New("deadlock detectado")
	_, err := env.uc.Complete(context.Background(), env.completeRequest(code))
	require.Error(t, err)
	assert.Equal(t, 0, env.acc.count(), "la cuenta no debe sobrevivir al rollback")

	row, _ := env.ver.GetByEmail(testEmail)
	assert.False(t, row.IsVerified)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fase 3: CompleteBusiness
// ──────────────────────────────────────────────────────────────────────────────

// registrar lleva el flujo hasta el final de la fase 2 y devuelve el token.
func registrar(t *testing.T, env *testEnv) string {
	t.Helper()
	require.NoError(t, env.uc.Initiate(testEmail))
	sends := env.codes.sent()
	out, err := env.uc.Complete(context.Background(), env.completeRequest(sends[len(sends)-1].code))
	require.NoError(t, err)
	return out.Token
}

func businessRequest(token string) dto.CompleteBusinessRequest {
	return dto.CompleteBusinessRequest{
		Name:     "Ferretería El Tornillo",
		Industry: "retail",
		Token:    token,
	}
}

// Token malformado o expirado: InvalidToken y ningún negocio creado.
func TestCompleteBusiness_TokenInvalido(t *testing.T) {
	env := newTestEnv(t)
	registrar(t, env)

	// Malformado
	_, err := env.uc.CompleteBusiness(context.Background(), businessRequest("token.invalido.aqui"))
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// Firmado con otro secreto
	ajeno, err2 := pkgjwt.Generate("otro-secreto", pkgjwt.Claims{UserID: "u1", Email: testEmail}, testIssuer, 60)
	require.NoError(t, err2)
	_, err = env.uc.CompleteBusiness(context.Background(), businessRequest(ajeno))
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// Expirado
	vencido, err2 := pkgjwt.Generate(testSecret, pkgjwt.Claims{UserID: "u1", Email: testEmail}, testIssuer, -1)
	require.NoError(t, err2)
	_, err = env.uc.CompleteBusiness(context.Background(), businessRequest(vencido))
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	assert.Equal(t, 0, env.biz.count(), "ningún negocio debe crearse")
}

// Fase final exitosa: negocio creado con el email de la cuenta, cuenta ACTIVE
// con el negocio adjunto, credencial fresca y correo de bienvenida despachado.
func TestCompleteBusiness_Exito(t *testing.T) {
	env := newTestEnv(t)
	token := registrar(t, env)

	out, err := env.uc.CompleteBusiness(context.Background(), businessRequest(token))
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 1, env.biz.count())
	assert.Equal(t, testEmail, out.Business.Email, "el negocio hereda el email de contacto de la cuenta")

	account, _ := env.acc.GetByEmail(testEmail)
	assert.Equal(t, entity.StatusActive, account.Status)
	assert.Equal(t, out.Business.ID, account.BusinessID)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, claims.Status)
	assert.Equal(t, out.Business.ID, claims.BusinessID)

	select {
	case <-env.welcome.notified:
	case <-time.After(2 * time.Second):
		t.Fatal("el correo de bienvenida no se despachó")
	}
}

// El fallo del correo de bienvenida es best-effort: no deshace el commit.
func TestCompleteBusiness_BienvenidaFallidaNoRevierte(t *testing.T) {
	env := newTestEnv(t)
	token := registrar(t, env)
	env.welcome.fail = errors.New("smtp caído")

	out, err := env.uc.CompleteBusiness(context.Background(), businessRequest(token))
	require.NoError(t, err)

	select {
	case <-env.welcome.notified:
	case <-time.After(2 * time.Second):
		t.Fatal("el envío de bienvenida debió intentarse")
	}
	assert.Equal(t, 1, env.biz.count(), "el negocio sigue creado")
	account, _ := env.acc.GetByEmail(testEmail)
	assert.Equal(t, entity.StatusActive, account.Status)
	_ = out
}

// Chequeo estricto de estado: una cuenta ya ACTIVE no puede adjuntar otro negocio.
func TestCompleteBusiness_CuentaYaActiva(t *testing.T) {
	env := newTestEnv(t)
	token := registrar(t, env)

	_, err := env.uc.CompleteBusiness(context.Background(), businessRequest(token))
	require.NoError(t, err)

	// Reenvío del mismo formulario con el token de la fase 2
	_, err = env.uc.CompleteBusiness(context.Background(), businessRequest(token))
	assert.ErrorIs(t, err, domain.ErrAccountNotPending)
	assert.Equal(t, 1, env.biz.count(), "no debe haber doble adjunción de negocio")
}

// Si la activación de la cuenta falla, el negocio recién creado también se
// revierte: la fase es atómica.
func TestCompleteBusiness_EscriturasAtomicas(t *testing.T) {
	env := newTestEnv(t)
	token := registrar(t, env)
	env.acc.failUpdate = errors.New("conexión perdida")

	_, err := env.uc.CompleteBusiness(context.Background(), businessRequest(token))
	require.Error(t, err)
	assert.Equal(t, 0, env.biz.count(), "el negocio no debe sobrevivir al rollback")

	account, _ := env.acc.GetByEmail(testEmail)
	assert.Equal(t, entity.StatusPendingBusiness, account.Status, "la cuenta sigue pendiente")
}
