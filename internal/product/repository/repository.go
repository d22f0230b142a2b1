package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/freshmarket/marketplace/internal/product/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindActiveByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindActive(filter domain.Filter, skip, limit int) ([]domain.Product, error) {
	q := r.db.Where("is_active = ?", true)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var products []domain.Product
	err := q.Order("name ASC").Offset(skip).Limit(limit).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) Deactivate(id uint, at time.Time) (bool, error) {
	result := r.db.Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": at})
	return result.RowsAffected > 0, result.Error
}

func (r *GormProductRepository) DistinctCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&domain.Product{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *GormProductRepository) DecrementStock(id uint, quantity int) error {
	return r.db.Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity)).Error
}
