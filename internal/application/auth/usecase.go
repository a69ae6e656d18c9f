package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
	"github.com/jhoicas/Embudos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de login. El alta de cuentas vive en el flujo de
// registro por fases (application/registration), no aquí.
type AuthUseCase struct {
	accountRepo repository.AccountRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(accountRepo repository.AccountRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{accountRepo: accountRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + cuenta.
// Una cuenta PENDING_BUSINESS puede iniciar sesión (recibe un token con ese
// estado para retomar el registro del negocio); PENDING_VERIFICATION no.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accountRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if account.Status != entity.StatusActive && account.Status != entity.StatusPendingBusiness {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Claims{
		UserID:     account.ID,
		Email:      account.Email,
		Role:       account.Role,
		Status:     account.Status,
		BusinessID: account.BusinessID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toAccountResponse(account),
	}, nil
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
