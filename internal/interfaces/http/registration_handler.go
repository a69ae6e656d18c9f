package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/application/registration"
	"github.com/jhoicas/Embudos-api/internal/domain"
)

// RegistrationHandler maneja el flujo de registro por fases (público).
type RegistrationHandler struct {
	uc *registration.RegistrationUseCase
}

// NewRegistrationHandler construye el handler.
func NewRegistrationHandler(uc *registration.RegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

// Initiate godoc
// @Summary      Iniciar registro: enviar código de verificación
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitiateRegistrationRequest  true  "Email a verificar"
// @Success      200   {object}  dto.InitiateRegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/initiate-registration [post]
func (h *RegistrationHandler) Initiate(c *fiber.Ctx) error {
	var in dto.InitiateRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	if err := h.uc.Initiate(in.Email); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if rl, ok := domain.IsRateLimit(err); ok {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:        "COOLDOWN",
				Message:     rl.Error(),
				WaitSeconds: rl.WaitSeconds,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.InitiateRegistrationResponse{Message: "código de verificación enviado"})
}

// Complete godoc
// @Summary      Completar registro: verificar código y crear la cuenta
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteRegistrationRequest  true  "Código y datos de la cuenta"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/complete-registration [post]
func (h *RegistrationHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Code == "" || in.Password == "" || in.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, code, password y first_name son requeridos"})
	}
	out, err := h.uc.Complete(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOrExpiredCode) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CODE", Message: "código inválido o expirado"})
		}
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CompleteBusiness godoc
// @Summary      Registrar el negocio y activar la cuenta
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteBusinessRequest  true  "Datos del negocio + token de la fase anterior"
// @Success      201   {object}  dto.BusinessSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/registration-business [post]
func (h *RegistrationHandler) CompleteBusiness(c *fiber.Ctx) error {
	var in dto.CompleteBusinessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y token son requeridos"})
	}
	out, err := h.uc.CompleteBusiness(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if errors.Is(err, domain.ErrAccountNotPending) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_PENDING", Message: "la cuenta no está pendiente de registrar negocio"})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
