package airports

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, airport *Airport) error
	GetByID(ctx context.Context, id uuid.UUID) (*Airport, error)
	GetByCode(ctx context.Context, code string) (*Airport, error)
	GetAll(ctx context.Context, query AirportListQuery) ([]Airport, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Airport, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountRoutesUsing(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, airport *Airport) error {
	return r.db.WithContext(ctx).Create(airport).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Airport, error) {
	var airport Airport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&airport).Error
	if err != nil {
		return nil, err
	}
	return &airport, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Airport, error) {
	var airport Airport
	err := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&airport).Error
	if err != nil {
		return nil, err
	}
	return &airport, nil
}

func (r *repository) GetAll(ctx context.Context, query AirportListQuery) ([]Airport, int64, error) {
	var airports []Airport
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Airport{})

	if query.Name != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query.Name)+"%")
	}
	if query.City != "" {
		db = db.Where("LOWER(closest_big_city) LIKE ?", "%"+strings.ToLower(query.City)+"%")
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "asc"
	if query.SortBy != "" {
		sortBy = query.SortBy
	}
	if query.SortOrder != "" {
		sortOrder = query.SortOrder
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(query.Limit).
		Find(&airports).Error

	return airports, totalCount, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Airport, error) {
	var airport Airport

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&airport).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&airport).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&airport).Error; err != nil {
		return nil, err
	}

	return &airport, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Airport{}).Error
}

// CountRoutesUsing reports how many routes reference the airport as
// source or destination. Foreign keys are enforced at the application
// layer, so deletion checks this first.
func (r *repository) CountRoutesUsing(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("routes").
		Where("source_id = ? OR destination_id = ?", id, id).
		Count(&count).Error
	return count, err
}
