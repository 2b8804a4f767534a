package usecase

import (
	"time"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// ExpenseUseCase casos de uso CRUD para gastos. Sin interacción con inventario.
type ExpenseUseCase struct {
	stores repository.StoreProvider
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(stores repository.StoreProvider) *ExpenseUseCase {
	return &ExpenseUseCase{stores: stores}
}

func validateExpense(in dto.ExpenseRequest) error {
	if in.Title == "" || in.Amount.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create registra un gasto; sin fecha explícita usa la actual.
func (uc *ExpenseUseCase) Create(userID string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	expense := &entity.Expense{
		Title:       in.Title,
		Amount:      in.Amount,
		Date:        date,
		Description: in.Description,
		CreatedAt:   now,
	}
	if _, err := store.Expenses().Add(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List devuelve todos los gastos del usuario.
func (uc *ExpenseUseCase) List(userID string) ([]dto.ExpenseResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := store.Expenses().GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return items, nil
}

// GetByID obtiene un gasto; (nil, nil) si no existe.
func (uc *ExpenseUseCase) GetByID(userID string, id uint64) (*dto.ExpenseResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	expense, err := store.Expenses().GetByID(id)
	if err != nil || expense == nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Update reemplaza el registro completo conservando la fecha de alta.
func (uc *ExpenseUseCase) Update(userID string, id uint64, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}
	prev, err := store.Expenses().GetByID(id)
	if err != nil {
		return nil, err
	}
	createdAt := time.Now()
	if prev != nil {
		createdAt = prev.CreatedAt
	}
	date := in.Date
	if date.IsZero() {
		date = createdAt
	}
	expense := &entity.Expense{
		ID:          id,
		Title:       in.Title,
		Amount:      in.Amount,
		Date:        date,
		Description: in.Description,
		CreatedAt:   createdAt,
	}
	if err := store.Expenses().Update(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(userID string, id uint64) error {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return err
	}
	return store.Expenses().Delete(id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
