package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user on first sight. An existing row keeps its role;
// the email is rewritten only when a different one is supplied. Taking an
// address already held by another row fails with gorm.ErrDuplicatedKey.
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}
	if user.Email != nil {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email"}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("users.email IS DISTINCT FROM excluded.email"),
			}},
		}
	}

	if err := r.db.WithContext(ctx).Clauses(onConflict).Create(user).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, user.ID)
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
