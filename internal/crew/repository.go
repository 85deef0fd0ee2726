package crew

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, member *Crew) error
	GetByID(ctx context.Context, id uuid.UUID) (*Crew, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Crew, error)
	GetAll(ctx context.Context, query CrewListQuery) ([]Crew, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Crew, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, member *Crew) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Crew, error) {
	var member Crew
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Crew, error) {
	var members []Crew
	if len(ids) == 0 {
		return members, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error
	return members, err
}

func (r *repository) GetAll(ctx context.Context, query CrewListQuery) ([]Crew, int64, error) {
	var members []Crew
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Crew{})

	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", term, term)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("last_name asc, first_name asc").
		Offset(offset).
		Limit(query.Limit).
		Find(&members).Error

	return members, totalCount, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Crew, error) {
	var member Crew

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&member).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Unassign from any flights first; the join table has no FK cascade
		if err := tx.Exec(`DELETE FROM flight_crew WHERE crew_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Crew{}).Error
	})
}
