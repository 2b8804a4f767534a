package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// OrderUseCase casos de uso para pedidos de entrega programados. Un pedido es
// una promesa de venta: nunca descuenta stock del producto.
type OrderUseCase struct {
	stores   repository.StoreProvider
	notifier ports.Notifier
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(stores repository.StoreProvider, notifier ports.Notifier) *OrderUseCase {
	return &OrderUseCase{stores: stores, notifier: notifier}
}

func validateOrder(in dto.OrderRequest) error {
	if in.ClientID == 0 || in.ProductID == 0 || in.Quantity <= 0 || in.UnitPrice.IsNegative() || in.DeliveryAt.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create registra un pedido en estado PENDING con snapshots de cliente y
// producto, y emite el evento de pedido nuevo tras persistir.
func (uc *OrderUseCase) Create(userID string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	if err := validateOrder(in); err != nil {
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
	product, err := store.Products().GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	order := &entity.Order{
		ClientID:      in.ClientID,
		ClientName:    client.Name,
		ClientAddress: client.Address,
		ProductID:     in.ProductID,
		ProductName:   product.Name,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		Total:         in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		Status:        entity.OrderPending,
		DeliveryAt:    in.DeliveryAt,
		CreatedAt:     time.Now(),
	}
	if _, err := store.Orders().Add(order); err != nil {
		return nil, err
	}
	// El gancho de notificación jamás revierte la mutación.
	uc.notifier.Notify(ports.EventNewOrder, ports.NewOrderPayload{
		UserID:     userID,
		OrderID:    order.ID,
		ClientName: order.ClientName,
		DeliveryAt: order.DeliveryAt,
	})
	return toOrderResponse(order), nil
}

// List devuelve todos los pedidos del usuario.
func (uc *OrderUseCase) List(userID string) ([]dto.OrderResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := store.Orders().GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, nil
}

// GetByID obtiene un pedido; (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(userID string, id uint64) (*dto.OrderResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	order, err := store.Orders().GetByID(id)
	if err != nil || order == nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Update reemplaza el registro completo, re-resuelve snapshots y recalcula el
// total. El estado se conserva; cambiarlo es asunto de UpdateStatus.
func (uc *OrderUseCase) Update(userID string, id uint64, in dto.OrderRequest) (*dto.OrderResponse, error) {
	if err := validateOrder(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	prev, err := store.Orders().GetByID(id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.ErrNotFound
	}
	client, err := store.Clients().GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	product, err := store.Products().GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	order := &entity.Order{
		ID:            id,
		ClientID:      in.ClientID,
		ClientName:    client.Name,
		ClientAddress: client.Address,
		ProductID:     in.ProductID,
		ProductName:   product.Name,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		Total:         in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		Status:        prev.Status,
		DeliveryAt:    in.DeliveryAt,
		CreatedAt:     prev.CreatedAt,
	}
	if err := store.Orders().Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateStatus cambia el estado del ciclo de vida. Solo valida que el estado
// sea conocido; las transiciones las dispara la UI sin reglas adicionales.
func (uc *OrderUseCase) UpdateStatus(userID string, id uint64, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	order, err := store.Orders().GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	order.Status = status
	if err := store.Orders().Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete elimina un pedido.
func (uc *OrderUseCase) Delete(userID string, id uint64) error {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return err
	}
	return store.Orders().Delete(id)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		ClientAddress: o.ClientAddress,
		ProductID:     o.ProductID,
		ProductName:   o.ProductName,
		Quantity:      o.Quantity,
		UnitPrice:     o.UnitPrice,
		Total:         o.Total,
		Status:        o.Status,
		DeliveryAt:    o.DeliveryAt,
		CreatedAt:     o.CreatedAt,
	}
}
