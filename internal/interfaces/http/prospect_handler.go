package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/application/usecase"
	"github.com/jhoicas/Embudos-api/internal/domain"
)

// ProspectHandler maneja las peticiones HTTP para Prospect (protegido),
// incluidas las operaciones de tablero: mover de etapa y arrastrar.
type ProspectHandler struct {
	uc *usecase.ProspectUseCase
}

// NewProspectHandler construye el handler.
func NewProspectHandler(uc *usecase.ProspectUseCase) *ProspectHandler {
	return &ProspectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear prospecto en un embudo
// @Tags         prospects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProspectRequest  true  "Datos del prospecto"
// @Success      201   {object}  dto.ProspectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prospects [post]
func (h *ProspectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProspectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FunnelID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "funnel_id es requerido"})
	}
	out, err := h.uc.Create(GetBusinessID(c), in)
	if err != nil {
		return prospectError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener prospecto por ID
// @Tags         prospects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del prospecto"
// @Success      200  {object}  dto.ProspectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prospects/{id} [get]
func (h *ProspectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetBusinessID(c), c.Params("id"))
	if err != nil {
		return prospectError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar prospecto (no mueve de etapa)
// @Tags         prospects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del prospecto"
// @Param        body  body  dto.UpdateProspectRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProspectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prospects/{id} [put]
func (h *ProspectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProspectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		return prospectError(c, err)
	}
	return c.JSON(out)
}

// ListByFunnel godoc
// @Summary      Listar prospectos de un embudo
// @Tags         prospects
// @Security     Bearer
// @Produce      json
// @Param        funnel_id  query  string  true   "ID del embudo"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.ProspectListResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/prospects [get]
func (h *ProspectHandler) ListByFunnel(c *fiber.Ctx) error {
	funnelID := c.Query("funnel_id")
	if funnelID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "funnel_id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListByFunnel(GetBusinessID(c), funnelID, limit, offset)
	if err != nil {
		return prospectError(c, err)
	}
	return c.JSON(out)
}

// MoveStage godoc
// @Summary      Mover prospecto a una etapa explícita
// @Tags         prospects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del prospecto"
// @Param        body  body  dto.MoveStageRequest  true  "Etapa destino"
// @Success      200   {object}  dto.ProspectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prospects/{id}/stage [put]
func (h *ProspectHandler) MoveStage(c *fiber.Ctx) error {
	var in dto.MoveStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.StageID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage es requerido"})
	}
	out, err := h.uc.MoveStage(GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		return prospectError(c, err)
	}
	return c.JSON(out)
}

// Drag godoc
// @Summary      Arrastrar la tarjeta del prospecto en el tablero
// @Tags         prospects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del prospecto"
// @Param        body  body  dto.DragRequest  true  "Desplazamiento horizontal y umbral opcional"
// @Success      200   {object}  dto.DragResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prospects/{id}/drag [post]
func (h *ProspectHandler) Drag(c *fiber.Ctx) error {
	var in dto.DragRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Drag(GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		return prospectError(c, err)
	}
	return c.JSON(out)
}

// prospectError mapea errores de dominio del tablero a códigos HTTP.
func prospectError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prospecto no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrStageNotInFunnel):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STAGE_NOT_IN_FUNNEL", Message: "la etapa no pertenece al embudo del prospecto"})
	case errors.Is(err, domain.ErrTransitionInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSITION_IN_FLIGHT", Message: "el prospecto ya tiene una transición en curso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
