package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// FunnelUseCase aplica reglas de negocio para embudos y sus etapas.
type FunnelUseCase struct {
	repo repository.FunnelRepository
}

// NewFunnelUseCase construye el caso de uso con el puerto de persistencia.
func NewFunnelUseCase(repo repository.FunnelRepository) *FunnelUseCase {
	return &FunnelUseCase{repo: repo}
}

// Create crea un embudo con su lista ordenada de etapas. Los ordinales se
// asignan densos 1..n según el orden recibido; las etapas quedan inmutables.
func (uc *FunnelUseCase) Create(businessID string, in dto.CreateFunnelRequest) (*dto.FunnelResponse, error) {
	if in.Name == "" || len(in.Stages) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	funnel := &entity.Funnel{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, s := range in.Stages {
		if s.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		funnel.Stages = append(funnel.Stages, entity.Stage{
			ID:          i + 1,
			FunnelID:    funnel.ID,
			Name:        s.Name,
			Description: s.Description,
		})
	}
	if err := uc.repo.Create(funnel); err != nil {
		return nil, err
	}
	return toFunnelResponse(funnel), nil
}

// GetByID obtiene un embudo (con etapas) validando que pertenezca a la empresa.
func (uc *FunnelUseCase) GetByID(businessID, id string) (*dto.FunnelResponse, error) {
	funnel, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if funnel == nil || funnel.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return toFunnelResponse(funnel), nil
}

// List lista los embudos de la empresa con paginación.
func (uc *FunnelUseCase) List(businessID string, limit, offset int) (*dto.FunnelListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FunnelResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFunnelResponse(f))
	}
	return &dto.FunnelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toFunnelResponse(f *entity.Funnel) *dto.FunnelResponse {
	if f == nil {
		return nil
	}
	resp := &dto.FunnelResponse{
		ID:          f.ID,
		BusinessID:  f.BusinessID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	for _, s := range f.Stages {
		resp.Stages = append(resp.Stages, dto.StageResponse{
			ID:          s.ID,
			FunnelID:    s.FunnelID,
			Name:        s.Name,
			Description: s.Description,
		})
	}
	return resp
}
