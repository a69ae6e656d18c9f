package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// StageSummary agrega los prospectos de una etapa para el reporte.
type StageSummary struct {
	Stage      entity.Stage
	Count      int
	TotalValue decimal.Decimal
}

// FunnelReportData datos que consume el generador de PDF.
type FunnelReportData struct {
	Business   *entity.Business
	Funnel     *entity.Funnel
	Stages     []StageSummary
	Total      int
	GrandTotal decimal.Decimal
}

// FunnelReportGenerator puerto del generador de PDF del reporte de embudo.
type FunnelReportGenerator interface {
	GenerateFunnelReport(ctx context.Context, data *FunnelReportData) ([]byte, error)
}

// ReportUseCase arma el reporte de un embudo: prospectos agrupados por etapa
// con conteo y valor total, y lo renderiza a PDF.
type ReportUseCase struct {
	funnelRepo   repository.FunnelRepository
	prospectRepo repository.ProspectRepository
	businessRepo repository.BusinessRepository
	generator    FunnelReportGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	funnelRepo repository.FunnelRepository,
	prospectRepo repository.ProspectRepository,
	businessRepo repository.BusinessRepository,
	generator FunnelReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		funnelRepo:   funnelRepo,
		prospectRepo: prospectRepo,
		businessRepo: businessRepo,
		generator:    generator,
	}
}

// FunnelPDF genera el PDF del reporte de un embudo de la empresa.
func (uc *ReportUseCase) FunnelPDF(ctx context.Context, businessID, funnelID string) ([]byte, error) {
	funnel, err := uc.funnelRepo.GetByID(funnelID)
	if err != nil {
		return nil, err
	}
	if funnel == nil || funnel.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	business, err := uc.businessRepo.GetByID(businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}

	// Sin paginación: el reporte cubre el embudo completo.
	prospects, err := uc.prospectRepo.ListByFunnel(funnelID, 10000, 0)
	if err != nil {
		return nil, err
	}

	data := &FunnelReportData{
		Business: business,
		Funnel:   funnel,
		Stages:   make([]StageSummary, 0, len(funnel.Stages)),
	}
	byStage := make(map[int]*StageSummary, len(funnel.Stages))
	for _, s := range funnel.Stages {
		data.Stages = append(data.Stages, StageSummary{Stage: s, TotalValue: decimal.Zero})
		byStage[s.ID] = &data.Stages[len(data.Stages)-1]
	}
	grand := decimal.Zero
	for _, p := range prospects {
		summary, ok := byStage[p.StageID]
		if !ok {
			continue
		}
		summary.Count++
		summary.TotalValue = summary.TotalValue.Add(p.Value)
		data.Total++
		grand = grand.Add(p.Value)
	}
	data.GrandTotal = grand

	return uc.generator.GenerateFunnelReport(ctx, data)
}
