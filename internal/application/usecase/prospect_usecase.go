package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	apppipeline "github.com/jhoicas/Embudos-api/internal/application/pipeline"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	domainpipeline "github.com/jhoicas/Embudos-api/internal/domain/pipeline"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// ProspectUseCase gestiona prospectos y sus movimientos de etapa.
// Los movimientos pasan por el motor de pipeline (una transición en vuelo por
// prospecto, rollback si la escritura falla) y validan al escribir la invariante
// de que la etapa destino pertenece al embudo del prospecto.
type ProspectUseCase struct {
	prospectRepo repository.ProspectRepository
	funnelRepo   repository.FunnelRepository
	board        *apppipeline.Board
}

// NewProspectUseCase construye el caso de uso.
func NewProspectUseCase(
	prospectRepo repository.ProspectRepository,
	funnelRepo repository.FunnelRepository,
	board *apppipeline.Board,
) *ProspectUseCase {
	return &ProspectUseCase{
		prospectRepo: prospectRepo,
		funnelRepo:   funnelRepo,
		board:        board,
	}
}

// Create crea un prospecto en un embudo de la empresa. Si StageID es cero
// entra por la primera etapa del embudo.
func (uc *ProspectUseCase) Create(businessID string, in dto.CreateProspectRequest) (*dto.ProspectResponse, error) {
	funnel, err := uc.funnelRepo.GetByID(in.FunnelID)
	if err != nil {
		return nil, err
	}
	if funnel == nil || funnel.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	if len(funnel.Stages) == 0 {
		return nil, domain.ErrInvalidInput
	}

	stage := funnel.Stages[0]
	if in.StageID != 0 {
		found := false
		for _, s := range funnel.Stages {
			if s.ID == in.StageID {
				stage = s
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrStageNotInFunnel
		}
	}

	now := time.Now()
	prospect := &entity.Prospect{
		ID:            uuid.New().String(),
		BusinessID:    businessID,
		FunnelID:      funnel.ID,
		StageID:       stage.ID,
		StageName:     stage.Name,
		ClientID:      in.ClientID,
		Value:         in.Value,
		ExpectedClose: in.ExpectedClose,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.prospectRepo.Create(prospect); err != nil {
		return nil, err
	}
	return toProspectResponse(prospect), nil
}

// GetByID obtiene un prospecto validando que pertenezca a la empresa.
func (uc *ProspectUseCase) GetByID(businessID, id string) (*dto.ProspectResponse, error) {
	p, err := uc.ownedProspect(businessID, id)
	if err != nil {
		return nil, err
	}
	return toProspectResponse(p), nil
}

// Update edita los campos manuales del prospecto (valor, cierre esperado,
// notas, cliente). El cambio de etapa tiene sus propias operaciones.
func (uc *ProspectUseCase) Update(businessID, id string, in dto.UpdateProspectRequest) (*dto.ProspectResponse, error) {
	p, err := uc.ownedProspect(businessID, id)
	if err != nil {
		return nil, err
	}
	p.ClientID = in.ClientID
	p.Value = in.Value
	p.ExpectedClose = in.ExpectedClose
	p.Notes = in.Notes
	p.UpdatedAt = time.Now()
	if err := uc.prospectRepo.Update(p); err != nil {
		return nil, err
	}
	return toProspectResponse(p), nil
}

// ListByFunnel lista los prospectos de un embudo de la empresa.
func (uc *ProspectUseCase) ListByFunnel(businessID, funnelID string, limit, offset int) (*dto.ProspectListResponse, error) {
	funnel, err := uc.funnelRepo.GetByID(funnelID)
	if err != nil {
		return nil, err
	}
	if funnel == nil || funnel.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.prospectRepo.ListByFunnel(funnelID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProspectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProspectResponse(p))
	}
	return &dto.ProspectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// MoveStage mueve el prospecto a una etapa explícita. La etapa destino debe
// pertenecer al embudo del prospecto; el nombre persistido es el canónico de
// la etapa, no el que venga del cliente.
func (uc *ProspectUseCase) MoveStage(businessID, id string, in dto.MoveStageRequest) (*dto.ProspectResponse, error) {
	p, err := uc.ownedProspect(businessID, id)
	if err != nil {
		return nil, err
	}
	stages, err := uc.funnelRepo.ListStages(p.FunnelID)
	if err != nil {
		return nil, err
	}
	var target *domainpipeline.Target
	for _, s := range stages {
		if s.ID == in.StageID {
			target = &domainpipeline.Target{StageID: s.ID, StageName: s.Name}
			break
		}
	}
	if target == nil {
		return nil, domain.ErrStageNotInFunnel
	}
	if err := uc.board.Transition(p, *target); err != nil {
		return nil, err
	}
	return toProspectResponse(p), nil
}

// Drag aplica el gesto de arrastre: calcula la etapa destino a partir del
// desplazamiento horizontal y el umbral, y si hay transición la aplica por el
// motor. Un desplazamiento bajo el umbral o en un borde del embudo es no-op.
func (uc *ProspectUseCase) Drag(businessID, id string, in dto.DragRequest) (*dto.DragResponse, error) {
	p, err := uc.ownedProspect(businessID, id)
	if err != nil {
		return nil, err
	}
	stages, err := uc.funnelRepo.ListStages(p.FunnelID)
	if err != nil {
		return nil, err
	}
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = domainpipeline.DefaultThreshold
	}
	target, err := domainpipeline.TargetStage(p.StageID, stages, in.DeltaX, threshold)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return &dto.DragResponse{Moved: false, StageID: p.StageID, StageName: p.StageName}, nil
	}
	if err := uc.board.Transition(p, *target); err != nil {
		return nil, err
	}
	return &dto.DragResponse{Moved: true, StageID: p.StageID, StageName: p.StageName}, nil
}

func (uc *ProspectUseCase) ownedProspect(businessID, id string) (*entity.Prospect, error) {
	p, err := uc.prospectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toProspectResponse(p *entity.Prospect) *dto.ProspectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProspectResponse{
		ID:            p.ID,
		BusinessID:    p.BusinessID,
		FunnelID:      p.FunnelID,
		StageID:       p.StageID,
		StageName:     p.StageName,
		ClientID:      p.ClientID,
		Value:         p.Value,
		ExpectedClose: p.ExpectedClose,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
