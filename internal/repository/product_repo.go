package repository

import (
	"errors"

	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockConflict is returned when a guarded decrement matches no row, i.e.
// the product is gone or the decrement would drive its stock negative.
var ErrStockConflict = errors.New("stock conflict")

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	ReplaceSizes(product *model.Product, sizes []model.Size) error

	// LockByIDs loads the given products inside tx with FOR UPDATE row locks,
	// so concurrent checkouts serialize on the rows they share.
	LockByIDs(tx *gorm.DB, ids []uuid.UUID) ([]model.Product, error)
	// DecrementStock runs inside tx so the decrement shares the checkout's
	// transaction boundary. The update is guarded by `stock >= quantity`;
	// a decrement that would go negative returns ErrStockConflict.
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("ClientType").Preload("Sizes").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("ClientType").Preload("Sizes").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) ReplaceSizes(product *model.Product, sizes []model.Size) error {
	return r.db.Model(product).Association("Sizes").Replace(sizes)
}

func (r *productRepo) LockByIDs(tx *gorm.DB, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}
