package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

var _ repository.ProspectRepository = (*ProspectRepo)(nil)

// ProspectRepo implementación de ProspectRepository sobre PostgreSQL.
type ProspectRepo struct {
	q Querier
}

// NewProspectRepository construye el adaptador de persistencia para prospectos.
func NewProspectRepository(q Querier) *ProspectRepo {
	return &ProspectRepo{q: q}
}

const prospectColumns = `id, business_id, funnel_id, stage_id, stage_name, client_id, value, expected_close, notes, created_at, updated_at`

// Create persiste un nuevo prospecto.
func (r *ProspectRepo) Create(p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (` + prospectColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BusinessID, p.FunnelID, p.StageID, p.StageName, p.ClientID,
		p.Value, p.ExpectedClose, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prospect: %w", err)
	}
	return nil
}

// GetByID obtiene un prospecto por ID, o nil si no existe.
func (r *ProspectRepo) GetByID(id string) (*entity.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE id = $1`
	var p entity.Prospect
	var clientID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.BusinessID, &p.FunnelID, &p.StageID, &p.StageName, &clientID,
		&p.Value, &p.ExpectedClose, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prospect: %w", err)
	}
	if clientID != nil {
		p.ClientID = *clientID
	}
	return &p, nil
}

// Update actualiza los campos editables de un prospecto.
func (r *ProspectRepo) Update(p *entity.Prospect) error {
	query := `
		UPDATE prospects
		SET stage_id = $2, stage_name = $3, client_id = NULLIF($4, ''), value = $5,
		    expected_close = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.StageID, p.StageName, p.ClientID, p.Value, p.ExpectedClose, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update prospect: %w", err)
	}
	return nil
}

// UpdateStage persiste solo el cambio de etapa. Es la única escritura que hace
// el motor de tablero al arrastrar una tarjeta.
func (r *ProspectRepo) UpdateStage(id string, stageID int, stageName string) error {
	query := `
		UPDATE prospects SET stage_id = $2, stage_name = $3, updated_at = $4
		WHERE id = $1`
	ct, err := r.q.Exec(context.Background(), query, id, stageID, stageName, time.Now())
	if err != nil {
		return fmt.Errorf("update prospect stage: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("update prospect stage: prospecto %s no existe", id)
	}
	return nil
}

// ListByFunnel lista los prospectos de un embudo ordenados por etapa.
func (r *ProspectRepo) ListByFunnel(funnelID string, limit, offset int) ([]*entity.Prospect, error) {
	query := `
		SELECT ` + prospectColumns + `
		FROM prospects WHERE funnel_id = $1
		ORDER BY stage_id ASC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, funnelID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Prospect
	for rows.Next() {
		var p entity.Prospect
		var clientID *string
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.FunnelID, &p.StageID, &p.StageName, &clientID,
			&p.Value, &p.ExpectedClose, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		if clientID != nil {
			p.ClientID = *clientID
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
