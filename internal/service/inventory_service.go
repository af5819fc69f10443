package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
)

type InventoryService struct {
	inventoryRepo InventoryStore
}

func NewInventoryService(inventoryRepo InventoryStore) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

var inventoryCategories = map[string]bool{
	"spare_parts":      true,
	"tools":            true,
	"safety_equipment": true,
	"consumables":      true,
}

type InventoryItemInput struct {
	ItemName     *string
	ItemCode     *string
	Category     *string
	CurrentStock *int
	MinimumStock *int
	MaxStock     *int
	UnitPrice    *decimal.Decimal
	Location     *string
	Description  *string
	IsActive     *bool
}

func (s *InventoryService) List(ctx context.Context, principal model.Principal) ([]model.InventoryItem, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.inventoryRepo.List(ctx)
}

func (s *InventoryService) LowStock(ctx context.Context, principal model.Principal) ([]model.InventoryItem, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.inventoryRepo.ListLowStock(ctx)
}

func (s *InventoryService) Create(ctx context.Context, principal model.Principal, input InventoryItemInput) (*model.InventoryItem, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if input.ItemName == nil || input.Category == nil {
		return nil, invalidInput("item_name and category are required")
	}

	item := &model.InventoryItem{IsActive: true}
	if err := applyInventoryInput(item, input); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, translateStoreError(err)
	}
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, principal model.Principal, id string, input InventoryItemInput) (*model.InventoryItem, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}

	itemID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	item, err := s.inventoryRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if err := applyInventoryInput(item, input); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, translateStoreError(err)
	}
	return item, nil
}

func applyInventoryInput(item *model.InventoryItem, input InventoryItemInput) error {
	if input.ItemName != nil {
		name := strings.TrimSpace(*input.ItemName)
		if name == "" {
			return invalidInput("item_name must not be empty")
		}
		item.ItemName = name
	}
	if input.ItemCode != nil {
		item.ItemCode = trimmedPtr(input.ItemCode)
	}
	if input.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*input.Category))
		if !inventoryCategories[category] {
			return invalidInput("unknown category %q", *input.Category)
		}
		item.Category = category
	}
	for _, n := range []*int{input.CurrentStock, input.MinimumStock, input.MaxStock} {
		if n != nil && *n < 0 {
			return invalidInput("stock levels must not be negative")
		}
	}
	if input.CurrentStock != nil {
		item.CurrentStock = *input.CurrentStock
	}
	if input.MinimumStock != nil {
		item.MinimumStock = *input.MinimumStock
	}
	if input.MaxStock != nil {
		item.MaxStock = input.MaxStock
	}
	if input.UnitPrice != nil {
		if err := checkAmount(*input.UnitPrice, "unit_price"); err != nil {
			return err
		}
		price := input.UnitPrice.Round(2)
		item.UnitPrice = &price
	}
	if input.Location != nil {
		item.Location = trimmedPtr(input.Location)
	}
	if input.Description != nil {
		item.Description = trimmedPtr(input.Description)
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	return nil
}
