package repository

import (
	"go-retail-ws/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository serves the read-mostly reference tables: categories,
// sizes and client types.
type CatalogRepository interface {
	Categories() ([]model.Category, error)
	Sizes() ([]model.Size, error)
	SizesByName(names []string) ([]model.Size, error)
	ClientTypes() ([]model.ClientType, error)
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db}
}

func (r *catalogRepo) Categories() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepo) Sizes() ([]model.Size, error) {
	var sizes []model.Size
	err := r.db.Order("name ASC").Find(&sizes).Error
	return sizes, err
}

func (r *catalogRepo) SizesByName(names []string) ([]model.Size, error) {
	var sizes []model.Size
	if len(names) == 0 {
		return sizes, nil
	}
	err := r.db.Where("name IN ?", names).Find(&sizes).Error
	return sizes, err
}

func (r *catalogRepo) ClientTypes() ([]model.ClientType, error) {
	var clientTypes []model.ClientType
	err := r.db.Order("name ASC").Find(&clientTypes).Error
	return clientTypes, err
}
