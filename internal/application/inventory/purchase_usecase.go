package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// PurchaseUseCase registra compras (entradas de stock) y concilia el
// inventario del producto en cada alta, edición y borrado. La escritura del
// registro contable y el ajuste de stock son operaciones separadas: un fallo
// entre ambas deja el registro como autoritativo y el inventario a la deriva
// (avisado, nunca revertido).
type PurchaseUseCase struct {
	stores   repository.StoreProvider
	adjuster *Adjuster
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(stores repository.StoreProvider, adjuster *Adjuster) *PurchaseUseCase {
	return &PurchaseUseCase{stores: stores, adjuster: adjuster}
}

func validatePurchase(in dto.PurchaseRequest) error {
	if in.ProductID == 0 || in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create persiste la compra con el total recalculado y después suma la
// cantidad al stock del producto. Si el producto no existe, la compra queda
// registrada igual y el desvío se avisa.
func (uc *PurchaseUseCase) Create(userID string, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := validatePurchase(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	// Snapshot del nombre para que el histórico sobreviva renombres y borrados.
	var productName string
	if product, err := store.Products().GetByID(in.ProductID); err == nil && product != nil {
		productName = product.Name
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	purchase := &entity.Purchase{
		ProductID:   in.ProductID,
		ProductName: productName,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Total:       in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		Date:        date,
		Description: in.Description,
		CreatedAt:   now,
	}
	if _, err := store.Purchases().Add(purchase); err != nil {
		return nil, err
	}
	uc.adjuster.Apply(userID, in.ProductID, in.Quantity, "purchase_create")
	return toPurchaseResponse(purchase), nil
}

// List devuelve todas las compras del usuario.
func (uc *PurchaseUseCase) List(userID string) ([]dto.PurchaseResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := store.Purchases().GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return items, nil
}

// GetByID obtiene una compra; (nil, nil) si no existe.
func (uc *PurchaseUseCase) GetByID(userID string, id uint64) (*dto.PurchaseResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	purchase, err := store.Purchases().GetByID(id)
	if err != nil || purchase == nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// Update reemplaza la compra y concilia por delta en dos pasos
// independientes: resta la cantidad anterior a su producto y suma la nueva al
// producto actual. Si el ProductID cambió, cada paso cae en el producto que
// corresponde (reasignación). Cada paso omite decrementos que dejarían el
// stock negativo.
func (uc *PurchaseUseCase) Update(userID string, id uint64, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := validatePurchase(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	prev, err := store.Purchases().GetByID(id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.ErrNotFound
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
	purchase := &entity.Purchase{
		ID:          id,
		ProductID:   in.ProductID,
		ProductName: productName,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Total:       in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		Date:        date,
		Description: in.Description,
		CreatedAt:   prev.CreatedAt,
	}
	if err := store.Purchases().Update(purchase); err != nil {
		return nil, err
	}
	uc.adjuster.Apply(userID, prev.ProductID, -prev.Quantity, "purchase_update")
	uc.adjuster.Apply(userID, in.ProductID, in.Quantity, "purchase_update")
	return toPurchaseResponse(purchase), nil
}

// Delete revierte el efecto de la compra sobre el stock (con la misma regla
// de no-negativo) y elimina el registro. Borrar un id inexistente no es error.
func (uc *PurchaseUseCase) Delete(userID string, id uint64) error {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return err
	}
	purchase, err := store.Purchases().GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return nil
	}
	uc.adjuster.Apply(userID, purchase.ProductID, -purchase.Quantity, "purchase_delete")
	return store.Purchases().Delete(id)
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:          p.ID,
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		Total:       p.Total,
		Date:        p.Date,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
