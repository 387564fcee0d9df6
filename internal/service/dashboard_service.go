package service

import (
	"time"

	"go-retail-ws/internal/repository"
)

// DashboardStats is the headline block on the admin dashboard.
type DashboardStats struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalQuantity     int64   `json:"totalQuantity"`
	TotalSales        int64   `json:"totalSales"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// MonthlySalesPoint is one bar of the monthly revenue chart.
type MonthlySalesPoint struct {
	Name  string  `json:"name"` // "Jan 06" style label
	Total float64 `json:"total"`
}

// Recommendations lists the best and worst selling products.
type Recommendations struct {
	TopProducts    []repository.ProductSales `json:"topProducts"`
	BottomProducts []repository.ProductSales `json:"bottomProducts"`
}

// InventoryStatus is a product's stock position with alert thresholds.
type InventoryStatus struct {
	repository.InventoryRow
	MinimumStock int `json:"minimum_stock"`
	MaximumStock int `json:"maximum_stock"`
}

// Default alert thresholds; per-product settings would replace these.
const (
	defaultMinimumStock = 10
	defaultMaximumStock = 200
)

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetMonthlySales() ([]MonthlySalesPoint, error)
	GetSalesByCategory() ([]repository.NamedQuantity, error)
	GetSalesByClientType() ([]repository.NamedQuantity, error)
	GetSalesBySize() ([]repository.NamedQuantity, error)
	GetInventoryStatus() ([]InventoryStatus, error)
	GetRecommendations() (*Recommendations, error)
}

type dashboardService struct {
	sales repository.SaleRepository
}

func NewDashboardService(sales repository.SaleRepository) DashboardService {
	return &dashboardService{sales: sales}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	totals, err := s.sales.SalesTotals()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalRevenue:  totals.TotalRevenue,
		TotalQuantity: totals.TotalQuantity,
		TotalSales:    totals.TotalSales,
	}
	if totals.TotalSales > 0 {
		stats.AverageOrderValue = totals.TotalRevenue / float64(totals.TotalSales)
	}
	return stats, nil
}

func (s *dashboardService) GetMonthlySales() ([]MonthlySalesPoint, error) {
	rows, err := s.sales.MonthlyTotals()
	if err != nil {
		return nil, err
	}

	points := make([]MonthlySalesPoint, 0, len(rows))
	for _, row := range rows {
		label := row.Month
		if t, err := time.Parse("2006-01", row.Month); err == nil {
			label = t.Format("Jan 06")
		}
		points = append(points, MonthlySalesPoint{Name: label, Total: row.Total})
	}
	return points, nil
}

func (s *dashboardService) GetSalesByCategory() ([]repository.NamedQuantity, error) {
	return s.sales.QuantityByCategory()
}

func (s *dashboardService) GetSalesByClientType() ([]repository.NamedQuantity, error) {
	return s.sales.QuantityByClientType()
}

func (s *dashboardService) GetSalesBySize() ([]repository.NamedQuantity, error) {
	return s.sales.QuantityBySize()
}

func (s *dashboardService) GetInventoryStatus() ([]InventoryStatus, error) {
	rows, err := s.sales.InventoryRows()
	if err != nil {
		return nil, err
	}

	statuses := make([]InventoryStatus, len(rows))
	for i, row := range rows {
		statuses[i] = InventoryStatus{
			InventoryRow: row,
			MinimumStock: defaultMinimumStock,
			MaximumStock: defaultMaximumStock,
		}
	}
	return statuses, nil
}

func (s *dashboardService) GetRecommendations() (*Recommendations, error) {
	ranking, err := s.sales.ProductRanking()
	if err != nil {
		return nil, err
	}

	rec := &Recommendations{
		TopProducts:    []repository.ProductSales{},
		BottomProducts: []repository.ProductSales{},
	}
	const n = 3
	for i := 0; i < len(ranking) && i < n; i++ {
		rec.TopProducts = append(rec.TopProducts, ranking[i])
	}
	for i := len(ranking) - 1; i >= 0 && i >= len(ranking)-n; i-- {
		rec.BottomProducts = append(rec.BottomProducts, ranking[i])
	}
	return rec, nil
}
