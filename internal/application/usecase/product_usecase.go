package usecase

import (
	"time"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo. El stock se
// edita aquí de forma manual; compras y ventas lo mutan vía conciliación.
type ProductUseCase struct {
	stores repository.StoreProvider
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(stores repository.StoreProvider) *ProductUseCase {
	return &ProductUseCase{stores: stores}
}

func validateProduct(in dto.ProductRequest) error {
	if in.Name == "" || in.Quantity < 0 || in.MinStock < 0 || in.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create crea un producto con la fecha de alta estampada por el servicio.
func (uc *ProductUseCase) Create(userID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		Price:       in.Price,
		CreatedAt:   time.Now(),
	}
	if _, err := store.Products().Add(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve todos los productos del usuario. Sin orden garantizado.
func (uc *ProductUseCase) List(userID string) ([]dto.ProductResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := store.Products().GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(userID string, id uint64) (*dto.ProductResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	product, err := store.Products().GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza el registro completo. La fecha de alta se conserva del
// registro previo cuando existe.
func (uc *ProductUseCase) Update(userID string, id uint64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	prev, err := store.Products().GetByID(id)
	if err != nil {
		return nil, err
	}
	createdAt := time.Now()
	if prev != nil {
		createdAt = prev.CreatedAt
	}
	product := &entity.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		Price:       in.Price,
		CreatedAt:   createdAt,
	}
	if err := store.Products().Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Las compras y ventas históricas conservan sus
// snapshots de nombre y precio, así que pueden quedar referencias colgantes.
func (uc *ProductUseCase) Delete(userID string, id uint64) error {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return err
	}
	return store.Products().Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		Price:       p.Price,
		Status:      p.StockStatus(),
		CreatedAt:   p.CreatedAt,
	}
}
