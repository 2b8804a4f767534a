package usecase

import (
	"time"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes del reparto.
type ClientUseCase struct {
	stores repository.StoreProvider
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(stores repository.StoreProvider) *ClientUseCase {
	return &ClientUseCase{stores: stores}
}

// Create registra un cliente. Solo el nombre es obligatorio.
func (uc *ClientUseCase) Create(userID string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	client := &entity.Client{
		Name:        in.Name,
		Address:     in.Address,
		Phone:       in.Phone,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if _, err := store.Clients().Add(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List devuelve todos los clientes del usuario.
func (uc *ClientUseCase) List(userID string) ([]dto.ClientResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := store.Clients().GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return items, nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (uc *ClientUseCase) GetByID(userID string, id uint64) (*dto.ClientResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	client, err := store.Clients().GetByID(id)
	if err != nil || client == nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update reemplaza el registro completo conservando la fecha de registro.
func (uc *ClientUseCase) Update(userID string, id uint64, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	prev, err := store.Clients().GetByID(id)
	if err != nil {
		return nil, err
	}
	createdAt := time.Now()
	if prev != nil {
		createdAt = prev.CreatedAt
	}
	client := &entity.Client{
		ID:          id,
		Name:        in.Name,
		Address:     in.Address,
		Phone:       in.Phone,
		Description: in.Description,
		CreatedAt:   createdAt,
	}
	if err := store.Clients().Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente. Ventas y pedidos históricos conservan su snapshot.
func (uc *ClientUseCase) Delete(userID string, id uint64) error {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return err
	}
	return store.Clients().Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Phone:       c.Phone,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
