package registration

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
	"github.com/jhoicas/Embudos-api/pkg/jwt"
	"github.com/jhoicas/Embudos-api/pkg/logger"
)

// JWTConfig configuración para las credenciales de sesión del flujo.
type JWTConfig struct {
	Secret      string
	Issuer      string
	SessionDays int // validez de los tokens emitidos en cada frontera de fase
}

// Config parámetros de tiempo del flujo de registro.
type Config struct {
	Cooldown time.Duration // espera mínima entre reenvíos de código (180s)
	CodeTTL  time.Duration // vigencia del código (30min)
}

// RegistrationUseCase orquesta el registro por fases:
// PENDING_VERIFICATION -> PENDING_BUSINESS -> ACTIVE.
// Cada fase exige la precondición de la anterior (código vigente, token válido)
// y persiste sus escrituras multi-fila en una sola transacción.
type RegistrationUseCase struct {
	accountRepo      repository.AccountRepository
	verificationRepo repository.VerificationRepository
	txRunner         TxRunner
	codeMailer       CodeMailer
	welcomeMailer    WelcomeMailer
	jwtCfg           JWTConfig
	cfg              Config
	log              *logger.Logger
	now              func() time.Time // inyectable en tests
}

// NewRegistrationUseCase construye el caso de uso del flujo de registro.
func NewRegistrationUseCase(
	accountRepo repository.AccountRepository,
	verificationRepo repository.VerificationRepository,
	txRunner TxRunner,
	codeMailer CodeMailer,
	welcomeMailer WelcomeMailer,
	jwtCfg JWTConfig,
	cfg Config,
	log *logger.Logger,
) *RegistrationUseCase {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 180 * time.Second
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 30 * time.Minute
	}
	return &RegistrationUseCase{
		accountRepo:      accountRepo,
		verificationRepo: verificationRepo,
		txRunner:         txRunner,
		codeMailer:       codeMailer,
		welcomeMailer:    welcomeMailer,
		jwtCfg:           jwtCfg,
		cfg:              cfg,
		log:              log,
		now:              time.Now,
	}
}

// Initiate inicia el registro de un email: genera un código de 6 dígitos,
// lo persiste (sobreescribiendo la fila previa si existe) y lo despacha por correo.
//
// Devuelve domain.ErrEmailAlreadyExists si ya hay una cuenta con ese email, y
// *domain.RateLimitError con los segundos restantes si el código anterior se
// emitió hace menos del cooldown. Exactamente un envío de correo por llamada exitosa.
func (uc *RegistrationUseCase) Initiate(email string) error {
	existing, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}

	now := uc.now()

	// Lectura + escritura separadas: dos solicitudes casi simultáneas pueden pasar
	// ambas el chequeo de cooldown. El upsert por email garantiza que aun así la
	// fila no se duplica (última escritura gana).
	prior, err := uc.verificationRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if prior != nil && !prior.IsVerified {
		elapsed := now.Sub(prior.CreatedAt)
		if elapsed < uc.cfg.Cooldown {
			wait := int(math.Ceil((uc.cfg.Cooldown - elapsed).Seconds()))
			return &domain.RateLimitError{WaitSeconds: wait}
		}
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generar código: %w", err)
	}
	v := &entity.EmailVerification{
		Email:      email,
		Code:       code,
		ExpiresAt:  now.Add(uc.cfg.CodeTTL),
		IsVerified: false,
		CreatedAt:  now,
	}
	if err := uc.verificationRepo.Upsert(v); err != nil {
		return err
	}
	if err := uc.codeMailer.SendVerificationCode(email, code); err != nil {
		return fmt.Errorf("enviar código de verificación: %w", err)
	}
	return nil
}

// Complete verifica el código y provisiona la cuenta en estado PENDING_BUSINESS.
//
// La creación de la cuenta y el marcado del código como consumido son una sola
// transacción. Devuelve la credencial de sesión firmada (7 días) para la fase
// de registro de negocio. El correo de bienvenida NO se envía aquí: pertenece
// a la fase de negocio.
func (uc *RegistrationUseCase) Complete(ctx context.Context, in dto.CompleteRegistrationRequest) (*dto.SessionResponse, error) {
	now := uc.now()

	row, err := uc.verificationRepo.GetActive(in.Email, in.Code, now)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrInvalidOrExpiredCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         entity.RoleOwner,
		Status:       entity.StatusPendingBusiness,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		accountRepo repository.AccountRepository,
		verificationRepo repository.VerificationRepository,
		_ repository.BusinessRepository,
	) error {
		if err := accountRepo.Create(account); err != nil {
			return err
		}
		return verificationRepo.MarkVerified(in.Email, now)
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.mintSession(account)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Token: token, User: *toAccountResponse(account)}, nil
}

// CompleteBusiness valida la credencial de la fase anterior, crea el negocio y
// activa la cuenta, todo en una transacción. Requiere que la cuenta esté en
// PENDING_BUSINESS (chequeo estricto: una cuenta ya activa no puede adjuntar
// otro negocio). El correo de bienvenida se despacha fuera de la transacción,
// best-effort: su fallo solo se registra en el log.
func (uc *RegistrationUseCase) CompleteBusiness(ctx context.Context, in dto.CompleteBusinessRequest) (*dto.BusinessSessionResponse, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	account, err := uc.accountRepo.GetByEmail(claims.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	if account.Status != entity.StatusPendingBusiness {
		return nil, domain.ErrAccountNotPending
	}

	now := uc.now()
	business := &entity.Business{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Industry: in.Industry,
		Address:  in.Address,
		Website:  in.Website,
		Phone:    in.Phone,
		// El email de contacto del negocio es el de la cuenta verificada
		Email:     account.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(
		accountRepo repository.AccountRepository,
		_ repository.VerificationRepository,
		businessRepo repository.BusinessRepository,
	) error {
		if err := businessRepo.Create(business); err != nil {
			return err
		}
		account.BusinessID = business.ID
		account.Status = entity.StatusActive
		account.UpdatedAt = now
		return accountRepo.Update(account)
	})
	if err != nil {
		// Si la tx falla, la cuenta no quedó mutada en el store; restaurar la copia en memoria
		account.BusinessID = ""
		account.Status = entity.StatusPendingBusiness
		return nil, err
	}

	token, err := uc.mintSession(account)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := uc.welcomeMailer.SendWelcome(account.Email, account.FullName(), business.Name); err != nil {
			uc.log.Warn().Err(err).Str("email", account.Email).Msg("correo de bienvenida no enviado")
		}
	}()

	return &dto.BusinessSessionResponse{
		Token:    token,
		Business: *toBusinessResponse(business),
		User:     *toAccountResponse(account),
	}, nil
}

func (uc *RegistrationUseCase) mintSession(a *entity.Account) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, jwt.Claims{
		UserID:     a.ID,
		Email:      a.Email,
		Role:       a.Role,
		Status:     a.Status,
		BusinessID: a.BusinessID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.SessionDays*24*60)
}

// generateCode genera un código numérico de 6 dígitos con crypto/rand.
// Es una cadena de ancho fijo: los ceros a la izquierda son válidos.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Phone:      a.Phone,
		Role:       a.Role,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	if b == nil {
		return nil
	}
	return &dto.BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Industry:  b.Industry,
		Address:   b.Address,
		Website:   b.Website,
		Phone:     b.Phone,
		Email:     b.Email,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
