package repository

import (
	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByCustomerID(customerID uuid.UUID) ([]model.Sale, error)
	FindMissingClientType() ([]model.Sale, error)
	UpdateClientType(saleID uuid.UUID, clientTypeID uuid.UUID) error

	// Dashboard aggregations.
	SalesTotals() (*SalesTotals, error)
	MonthlyTotals() ([]MonthlyTotal, error)
	QuantityByCategory() ([]NamedQuantity, error)
	QuantityByClientType() ([]NamedQuantity, error)
	QuantityBySize() ([]NamedQuantity, error)
	ProductRanking() ([]ProductSales, error)
	InventoryRows() ([]InventoryRow, error)
}

// SalesTotals backs the dashboard stats cards.
type SalesTotals struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalSales    int64   `json:"total_sales"`
}

// MonthlyTotal is one month of revenue for the sales chart.
type MonthlyTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// NamedQuantity is a generic label/quantity pair for grouped charts.
type NamedQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"value"`
}

// ProductSales is units sold per product, for recommendations.
type ProductSales struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
}

// InventoryRow is a product's stock position for the inventory panel.
type InventoryRow struct {
	ProductID    uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CurrentStock int       `json:"current_stock"`
	TotalSold    int64     `json:"total_sold"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("ClientType").
		Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").Preload("ClientType").
		Preload("Items").Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByCustomerID(customerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("ClientType").
		Preload("Items").Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindMissingClientType() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("client_type_id IS NULL").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) UpdateClientType(saleID uuid.UUID, clientTypeID uuid.UUID) error {
	return r.db.Model(&model.Sale{}).
		Where("id = ?", saleID).
		Update("client_type_id", clientTypeID).Error
}

func (r *saleRepo) SalesTotals() (*SalesTotals, error) {
	var totals SalesTotals

	if err := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totals.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Sale{}).Count(&totals.TotalSales).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.SaleItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totals.TotalQuantity).Error; err != nil {
		return nil, err
	}

	return &totals, nil
}

func (r *saleRepo) MonthlyTotals() ([]MonthlyTotal, error) {
	var results []MonthlyTotal

	rows, err := r.db.Model(&model.Sale{}).
		Select("to_char(date, 'YYYY-MM') AS month, COALESCE(SUM(total), 0) AS total").
		Group("to_char(date, 'YYYY-MM')").
		Order("month ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MonthlyTotal
		if err := rows.Scan(&data.Month, &data.Total); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *saleRepo) QuantityByCategory() ([]NamedQuantity, error) {
	return r.scanNamedQuantities(
		r.db.Model(&model.SaleItem{}).
			Select("COALESCE(categories.name, 'Sin categoría') AS name, COALESCE(SUM(sale_items.quantity), 0) AS quantity").
			Joins("JOIN products ON products.id = sale_items.product_id").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Group("COALESCE(categories.name, 'Sin categoría')").
			Order("quantity DESC"),
	)
}

func (r *saleRepo) QuantityByClientType() ([]NamedQuantity, error) {
	return r.scanNamedQuantities(
		r.db.Model(&model.SaleItem{}).
			Select("COALESCE(client_types.name, 'Sin tipo') AS name, COALESCE(SUM(sale_items.quantity), 0) AS quantity").
			Joins("JOIN sales ON sales.id = sale_items.sale_id").
			Joins("LEFT JOIN client_types ON client_types.id = sales.client_type_id").
			Group("COALESCE(client_types.name, 'Sin tipo')").
			Order("quantity DESC"),
	)
}

func (r *saleRepo) QuantityBySize() ([]NamedQuantity, error) {
	return r.scanNamedQuantities(
		r.db.Model(&model.SaleItem{}).
			Select("size AS name, COALESCE(SUM(quantity), 0) AS quantity").
			Where("size IS NOT NULL").
			Group("size").
			Order("quantity DESC"),
	)
}

func (r *saleRepo) scanNamedQuantities(query *gorm.DB) ([]NamedQuantity, error) {
	var results []NamedQuantity

	rows, err := query.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data NamedQuantity
		if err := rows.Scan(&data.Name, &data.Quantity); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *saleRepo) ProductRanking() ([]ProductSales, error) {
	var results []ProductSales

	rows, err := r.db.Model(&model.SaleItem{}).
		Select("products.id, products.name, COALESCE(SUM(sale_items.quantity), 0) AS quantity").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Group("products.id, products.name").
		Order("quantity DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data ProductSales
		if err := rows.Scan(&data.ProductID, &data.Name, &data.Quantity); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *saleRepo) InventoryRows() ([]InventoryRow, error) {
	var results []InventoryRow

	rows, err := r.db.Model(&model.Product{}).
		Select(`products.id, products.name,
			COALESCE(categories.name, 'Sin categoría') AS category,
			products.stock,
			COALESCE(SUM(sale_items.quantity), 0) AS total_sold`).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN sale_items ON sale_items.product_id = products.id AND sale_items.deleted_at IS NULL").
		Group("products.id, products.name, categories.name, products.stock").
		Order("products.name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data InventoryRow
		if err := rows.Scan(&data.ProductID, &data.Name, &data.Category, &data.CurrentStock, &data.TotalSold); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}
