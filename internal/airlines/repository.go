package airlines

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, airline *Airline) error
	GetByID(ctx context.Context, id uuid.UUID) (*Airline, error)
	GetByCode(ctx context.Context, code string) (*Airline, error)
	GetAll(ctx context.Context, query AirlineListQuery) ([]Airline, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Airline, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountFlightsUsing(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, airline *Airline) error {
	return r.db.WithContext(ctx).Create(airline).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Airline, error) {
	var airline Airline
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&airline).Error
	if err != nil {
		return nil, err
	}
	return &airline, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Airline, error) {
	var airline Airline
	err := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&airline).Error
	if err != nil {
		return nil, err
	}
	return &airline, nil
}

func (r *repository) GetAll(ctx context.Context, query AirlineListQuery) ([]Airline, int64, error) {
	var airlines []Airline
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Airline{})

	if query.Name != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query.Name)+"%")
	}
	if query.Country != "" {
		db = db.Where("LOWER(country) LIKE ?", "%"+strings.ToLower(query.Country)+"%")
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
		Find(&airlines).Error

	return airlines, totalCount, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Airline, error) {
	var airline Airline

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&airline).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&airline).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&airline).Error; err != nil {
		return nil, err
	}

	return &airline, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Airline{}).Error
}

func (r *repository) CountFlightsUsing(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("flights").
		Where("airline_id = ?", id).
		Count(&count).Error
	return count, err
}
