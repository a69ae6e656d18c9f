package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/application/usecase"
	"github.com/jhoicas/Embudos-api/internal/domain"
)

// FunnelHandler maneja las peticiones HTTP para Funnel (protegido).
type FunnelHandler struct {
	uc *usecase.FunnelUseCase
}

// NewFunnelHandler construye el handler.
func NewFunnelHandler(uc *usecase.FunnelUseCase) *FunnelHandler {
	return &FunnelHandler{uc: uc}
}

// Create godoc
// @Summary      Crear embudo con sus etapas
// @Tags         funnels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFunnelRequest  true  "Embudo y etapas ordenadas"
// @Success      201   {object}  dto.FunnelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/funnels [post]
func (h *FunnelHandler) Create(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	var in dto.CreateFunnelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(businessID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y al menos una etapa son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener embudo por ID
// @Tags         funnels
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del embudo"
// @Success      200  {object}  dto.FunnelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/funnels/{id} [get]
func (h *FunnelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetBusinessID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "embudo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar embudos de la empresa
// @Tags         funnels
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.FunnelListResponse
// @Router       /api/funnels [get]
func (h *FunnelHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetBusinessID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// pageParams extrae y acota limit/offset de la query.
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
