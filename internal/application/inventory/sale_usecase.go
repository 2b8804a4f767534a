package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// SaleUseCase registra ventas (salidas de stock). La creación es el único
// camino con precondición dura: sin stock suficiente no se persiste nada.
// Edición y borrado NO restauran stock; el ajuste posterior es manual.
type SaleUseCase struct {
	stores   repository.StoreProvider
	adjuster *Adjuster
	notifier ports.Notifier
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(stores repository.StoreProvider, adjuster *Adjuster, notifier ports.Notifier) *SaleUseCase {
	return &SaleUseCase{stores: stores, adjuster: adjuster, notifier: notifier}
}

func validateSale(in dto.SaleRequest) error {
	if in.ClientID == 0 || in.ProductID == 0 || in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create verifica el stock disponible bajo el mutex del producto, persiste la
// venta y descuenta la cantidad. Con stock insuficiente devuelve
// InsufficientStockError con lo solicitado y lo disponible, sin persistir.
// Si tras la venta el producto queda en CRITICAL o LOW, emite el evento de
// stock bajo.
func (uc *SaleUseCase) Create(userID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if err := validateSale(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	client, err := store.Clients().GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	// Verificación y decremento bajo la misma sección crítica: otra venta
	// concurrente del mismo producto no puede colarse entre ambos.
	unlock := uc.adjuster.Lock(userID, in.ProductID)
	defer unlock()

	product, err := store.Products().GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Quantity < in.Quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: in.ProductID,
			Requested: in.Quantity,
			Available: product.Quantity,
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	sale := &entity.Sale{
		ClientID:    in.ClientID,
		ClientName:  client.Name,
		ProductID:   in.ProductID,
		ProductName: product.Name,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Total:       in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		Date:        date,
		Description: in.Description,
		CreatedAt:   now,
	}
	if _, err := store.Sales().Add(sale); err != nil {
		return nil, err
	}
	// La venta ya es autoritativa: un fallo al descontar no la revierte.
	product.Quantity -= in.Quantity
	if err := store.Products().Update(product); err != nil {
		uc.adjuster.desync(userID, in.ProductID, -in.Quantity, desyncStorageError, "sale_create", err)
		return toSaleResponse(sale), nil
	}
	if status := product.StockStatus(); status != entity.StockAvailable {
		uc.notifier.Notify(ports.EventLowStock, ports.LowStockPayload{
			UserID:      userID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    product.Quantity,
			MinStock:    product.MinStock,
			Status:      status,
		})
	}
	return toSaleResponse(sale), nil
}

// List devuelve todas las ventas del usuario.
func (uc *SaleUseCase) List(userID string) ([]dto.SaleResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := store.Sales().GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return items, nil
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (uc *SaleUseCase) GetByID(userID string, id uint64) (*dto.SaleResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	sale, err := store.Sales().GetByID(id)
	if err != nil || sale == nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Update reemplaza la venta con el total recalculado. No concilia stock:
// solo las compras se concilian en edición y borrado.
func (uc *SaleUseCase) Update(userID string, id uint64, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if err := validateSale(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	prev, err := store.Sales().GetByID(id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.ErrNotFound
	}
	clientName := prev.ClientName
	if in.ClientID != prev.ClientID {
		clientName = ""
		if client, err := store.Clients().GetByID(in.ClientID); err == nil && client != nil {
			clientName = client.Name
		}
	}
	productName := prev.ProductName
	if in.ProductID != prev.ProductID {
		productName = ""
		if product, err := store.Products().GetByID(in.ProductID); err == nil && product != nil {
			productName = product.Name
		}
	}
	date := in.Date
	if date.IsZero() {
		date = prev.Date
	}
	sale := &entity.Sale{
		ID:          id,
		ClientID:    in.ClientID,
		ClientName:  clientName,
		ProductID:   in.ProductID,
		ProductName: productName,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Total:       in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		Date:        date,
		Description: in.Description,
		CreatedAt:   prev.CreatedAt,
	}
	if err := store.Sales().Update(sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Delete elimina la venta sin restaurar stock.
func (uc *SaleUseCase) Delete(userID string, id uint64) error {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return err
	}
	return store.Sales().Delete(id)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		ClientID:    s.ClientID,
		ClientName:  s.ClientName,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Total:       s.Total,
		Date:        s.Date,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}
