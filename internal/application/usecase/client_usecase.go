package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// ClientUseCase gestiona las fichas de clientes de una empresa.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea una ficha de cliente.
func (uc *ClientUseCase) Create(businessID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Company:    in.Company,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene una ficha validando que pertenezca a la empresa.
func (uc *ClientUseCase) GetByID(businessID, id string) (*dto.ClientResponse, error) {
	client, err := uc.ownedClient(businessID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update edita una ficha de cliente.
func (uc *ClientUseCase) Update(businessID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.ownedClient(businessID, id)
	if err != nil {
		return nil, err
	}
	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	client.Company = in.Company
	client.Notes = in.Notes
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista las fichas de la empresa con paginación.
func (uc *ClientUseCase) List(businessID string, limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una ficha de cliente de la empresa.
func (uc *ClientUseCase) Delete(businessID, id string) error {
	if _, err := uc.ownedClient(businessID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *ClientUseCase) ownedClient(businessID, id string) (*entity.Client, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil || client.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Company:    c.Company,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
