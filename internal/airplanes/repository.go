package airplanes

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateType(ctx context.Context, t *AirplaneType) error
	GetTypeByID(ctx context.Context, id uuid.UUID) (*AirplaneType, error)
	GetTypeByName(ctx context.Context, name string) (*AirplaneType, error)
	GetTypes(ctx context.Context) ([]AirplaneType, error)
	UpdateType(ctx context.Context, t *AirplaneType) error
	DeleteType(ctx context.Context, id uuid.UUID) error
	CountAirplanesOfType(ctx context.Context, typeID uuid.UUID) (int64, error)

	Create(ctx context.Context, airplane *Airplane) error
	GetByID(ctx context.Context, id uuid.UUID) (*Airplane, error)
	List(ctx context.Context, query AirplaneListQuery) ([]Airplane, int64, error)
	Update(ctx context.Context, airplane *Airplane) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountFlightsUsing(ctx context.Context, airplaneID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateType(ctx context.Context, t *AirplaneType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) GetTypeByID(ctx context.Context, id uuid.UUID) (*AirplaneType, error) {
	var t AirplaneType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetTypeByName(ctx context.Context, name string) (*AirplaneType, error) {
	var t AirplaneType
	err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetTypes(ctx context.Context) ([]AirplaneType, error) {
	var types []AirplaneType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) UpdateType(ctx context.Context, t *AirplaneType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) DeleteType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&AirplaneType{}, "id = ?", id).Error
}

func (r *repository) CountAirplanesOfType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Airplane{}).Where("type_id = ?", typeID).Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, airplane *Airplane) error {
	return r.db.WithContext(ctx).Create(airplane).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Airplane, error) {
	var airplane Airplane
	err := r.db.WithContext(ctx).Preload("Type").Where("id = ?", id).First(&airplane).Error
	if err != nil {
		return nil, err
	}
	return &airplane, nil
}

func (r *repository) List(ctx context.Context, query AirplaneListQuery) ([]Airplane, int64, error) {
	var airplanes []Airplane
	var total int64

	db := r.db.WithContext(ctx).Model(&Airplane{})

	if query.Name != "" {
		db = db.Where("LOWER(airplanes.name) LIKE ?", "%"+strings.ToLower(query.Name)+"%")
	}
	if query.TypeID != "" {
		db = db.Where("type_id = ?", query.TypeID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at DESC"
	switch query.SortBy {
	case "name":
		sortBy = "name ASC"
	case "rows":
		sortBy = "rows DESC"
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit
	err := db.Preload("Type").Order(sortBy).Offset(offset).Limit(query.Limit).Find(&airplanes).Error
	if err != nil {
		return nil, 0, err
	}

	return airplanes, total, nil
}

func (r *repository) Update(ctx context.Context, airplane *Airplane) error {
	return r.db.WithContext(ctx).Save(airplane).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Airplane{}, "id = ?", id).Error
}

func (r *repository) CountFlightsUsing(ctx context.Context, airplaneID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("flights").Where("airplane_id = ?", airplaneID).Count(&count).Error
	return count, err
}
