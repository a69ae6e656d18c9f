package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

var _ repository.FunnelRepository = (*FunnelRepo)(nil)

// FunnelRepo implementación de FunnelRepository sobre PostgreSQL.
// Las etapas viven en su propia tabla con clave compuesta (funnel_id, id),
// donde id es el ordinal denso 1..n dentro del embudo.
type FunnelRepo struct {
	q Querier
}

// NewFunnelRepository construye el adaptador de persistencia para embudos.
func NewFunnelRepository(q Querier) *FunnelRepo {
	return &FunnelRepo{q: q}
}

// Create persiste el embudo y sus etapas.
func (r *FunnelRepo) Create(f *entity.Funnel) error {
	ctx := context.Background()
	query := `
		INSERT INTO funnels (id, business_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query,
		f.ID, f.BusinessID, f.Name, f.Description, f.CreatedAt, f.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert funnel: %w", err)
	}
	stageQuery := `
		INSERT INTO stages (funnel_id, id, name, description)
		VALUES ($1, $2, $3, $4)`
	for _, s := range f.Stages {
		if _, err := r.q.Exec(ctx, stageQuery, f.ID, s.ID, s.Name, s.Description); err != nil {
			return fmt.Errorf("insert stage %d: %w", s.ID, err)
		}
	}
	return nil
}

// GetByID obtiene el embudo con sus etapas ordenadas, o nil si no existe.
func (r *FunnelRepo) GetByID(id string) (*entity.Funnel, error) {
	query := `
		SELECT id, business_id, name, description, created_at, updated_at
		FROM funnels WHERE id = $1`
	var f entity.Funnel
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.BusinessID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get funnel: %w", err)
	}
	stages, err := r.ListStages(f.ID)
	if err != nil {
		return nil, err
	}
	f.Stages = stages
	return &f, nil
}

// ListByBusiness lista los embudos de una empresa con sus etapas.
func (r *FunnelRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Funnel, error) {
	query := `
		SELECT id, business_id, name, description, created_at, updated_at
		FROM funnels WHERE business_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list funnels: %w", err)
	}
	defer rows.Close()
	var list []*entity.Funnel
	for rows.Next() {
		var f entity.Funnel
		if err := rows.Scan(&f.ID, &f.BusinessID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan funnel: %w", err)
		}
		list = append(list, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range list {
		stages, err := r.ListStages(f.ID)
		if err != nil {
			return nil, err
		}
		f.Stages = stages
	}
	return list, nil
}

// ListStages devuelve las etapas de un embudo en orden ascendente por ordinal.
func (r *FunnelRepo) ListStages(funnelID string) ([]entity.Stage, error) {
	query := `
		SELECT funnel_id, id, name, description
		FROM stages WHERE funnel_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, funnelID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()
	var stages []entity.Stage
	for rows.Next() {
		var s entity.Stage
		if err := rows.Scan(&s.FunnelID, &s.ID, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}
