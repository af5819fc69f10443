package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

type ChecklistService struct {
	checklistRepo  ChecklistStore
	assignmentRepo AssignmentStore
	now            func() time.Time
}

func NewChecklistService(checklistRepo ChecklistStore, assignmentRepo AssignmentStore) *ChecklistService {
	return &ChecklistService{
		checklistRepo:  checklistRepo,
		assignmentRepo: assignmentRepo,
		now:            time.Now,
	}
}

var (
	checklistTypes = map[string]bool{"pre_trip": true, "post_trip": true, "inventory": true, "maintenance": true}
	itemCategories = map[string]bool{"safety": true, "inventory": true, "maintenance": true, "documentation": true}
	itemConditions = map[string]bool{"good": true, "fair": true, "poor": true, "needs_attention": true}
)

type CreateChecklistInput struct {
	ChecklistType string
	Notes         *string
}

type UpdateChecklistInput struct {
	Status *string
	Notes  *string
}

type ChecklistItemInput struct {
	ItemName     *string
	ItemCategory *string
	IsChecked    *bool
	Condition    *string
	Quantity     *int
	Notes        *string
	ImageURL     *string
}

func (s *ChecklistService) List(ctx context.Context, principal model.Principal) ([]model.DriverChecklist, error) {
	if principal.IsStaff() {
		return s.checklistRepo.List(ctx, nil)
	}
	driverID, err := requireDriver(principal.DriverID)
	if err != nil {
		return nil, err
	}
	return s.checklistRepo.List(ctx, &driverID)
}

func (s *ChecklistService) Create(ctx context.Context, principal model.Principal, input CreateChecklistInput) (*model.DriverChecklist, error) {
	driverID, err := requireDriver(principal.DriverID)
	if err != nil {
		return nil, err
	}

	checklistType := strings.ToLower(strings.TrimSpace(input.ChecklistType))
	if !checklistTypes[checklistType] {
		return nil, invalidInput("unknown checklist_type %q", input.ChecklistType)
	}

	assignment, err := activeAssignment(ctx, s.assignmentRepo, driverID)
	if err != nil {
		return nil, err
	}

	checklist := &model.DriverChecklist{
		DriverID:      driverID,
		VehicleID:     assignment.VehicleID,
		ChecklistType: checklistType,
		Status:        model.ChecklistStatusPending,
		Notes:         trimmedPtr(input.Notes),
	}
	if err := s.checklistRepo.Create(ctx, checklist); err != nil {
		return nil, translateStoreError(err)
	}
	return checklist, nil
}

// Update moves a checklist between statuses; completing it stamps completed_at.
func (s *ChecklistService) Update(ctx context.Context, principal model.Principal, id string, input UpdateChecklistInput) (*model.DriverChecklist, error) {
	checklist, err := s.accessibleChecklist(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		status := model.ChecklistStatus(strings.ToLower(strings.TrimSpace(*input.Status)))
		if !status.Valid() {
			return nil, invalidInput("unknown checklist status %q", *input.Status)
		}
		checklist.Status = status
		if status == model.ChecklistStatusCompleted {
			now := s.now()
			checklist.CompletedAt = &now
		} else {
			checklist.CompletedAt = nil
		}
	}
	if input.Notes != nil {
		checklist.Notes = trimmedPtr(input.Notes)
	}

	if err := s.checklistRepo.Update(ctx, checklist); err != nil {
		return nil, err
	}
	return checklist, nil
}

func (s *ChecklistService) ListItems(ctx context.Context, principal model.Principal, checklistID string) ([]model.ChecklistItem, error) {
	checklist, err := s.accessibleChecklist(ctx, principal, checklistID)
	if err != nil {
		return nil, err
	}
	return s.checklistRepo.ListItems(ctx, checklist.ID)
}

func (s *ChecklistService) AddItem(ctx context.Context, principal model.Principal, checklistID string, input ChecklistItemInput) (*model.ChecklistItem, error) {
	checklist, err := s.accessibleChecklist(ctx, principal, checklistID)
	if err != nil {
		return nil, err
	}

	item := &model.ChecklistItem{ChecklistID: checklist.ID}
	if input.ItemName == nil || strings.TrimSpace(*input.ItemName) == "" {
		return nil, invalidInput("item_name is required")
	}
	if input.ItemCategory == nil {
		return nil, invalidInput("item_category is required")
	}
	if err := applyItemInput(item, input); err != nil {
		return nil, err
	}

	if err := s.checklistRepo.CreateItem(ctx, item); err != nil {
		return nil, translateStoreError(err)
	}
	return item, nil
}

func (s *ChecklistService) UpdateItem(ctx context.Context, principal model.Principal, id string, input ChecklistItemInput) (*model.ChecklistItem, error) {
	itemID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	item, err := s.checklistRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if _, err := s.accessibleChecklist(ctx, principal, item.ChecklistID.String()); err != nil {
		return nil, err
	}

	if err := applyItemInput(item, input); err != nil {
		return nil, err
	}
	if err := s.checklistRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// accessibleChecklist loads a checklist the caller may touch: staff any,
// drivers only their own.
func (s *ChecklistService) accessibleChecklist(ctx context.Context, principal model.Principal, id string) (*model.DriverChecklist, error) {
	checklistID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	checklist, err := s.checklistRepo.GetByID(ctx, checklistID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if !principal.IsStaff() && !ownsRecord(principal.DriverID, checklist.DriverID) {
		return nil, ErrPermissionDenied
	}
	return checklist, nil
}

func applyItemInput(item *model.ChecklistItem, input ChecklistItemInput) error {
	if input.ItemName != nil {
		name := strings.TrimSpace(*input.ItemName)
		if name == "" {
			return invalidInput("item_name must not be empty")
		}
		item.ItemName = name
	}
	if input.ItemCategory != nil {
		category := strings.ToLower(strings.TrimSpace(*input.ItemCategory))
		if !itemCategories[category] {
			return invalidInput("unknown item_category %q", *input.ItemCategory)
		}
		item.ItemCategory = category
	}
	if input.IsChecked != nil {
		item.IsChecked = *input.IsChecked
	}
	if input.Condition != nil {
		condition := strings.ToLower(strings.TrimSpace(*input.Condition))
		if condition != "" && !itemConditions[condition] {
			return invalidInput("unknown condition %q", *input.Condition)
		}
		item.Condition = trimmedPtr(&condition)
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return invalidInput("quantity must not be negative")
		}
		item.Quantity = input.Quantity
	}
	if input.Notes != nil {
		item.Notes = trimmedPtr(input.Notes)
	}
	if input.ImageURL != nil {
		item.ImageURL = trimmedPtr(input.ImageURL)
	}
	return nil
}

func ownsRecord(callerDriverID *uuid.UUID, ownerDriverID uuid.UUID) bool {
	return callerDriverID != nil && *callerDriverID == ownerDriverID
}
