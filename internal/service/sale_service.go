package service

import (
	"errors"

	"go-retail-ws/internal/apperr"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/pkg/retry"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SaleService interface {
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
	// GetPurchasesByEmail returns the sales belonging to the customer record
	// linked to the given account email; empty when no such customer exists.
	GetPurchasesByEmail(email string) ([]model.Sale, error)
	// BackfillClientTypes tags historical sales that predate client-type
	// inference, using the same tally as checkout. Returns (updated, total).
	BackfillClientTypes() (int, int, error)
}

type saleService struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func NewSaleService(sales repository.SaleRepository, customers repository.CustomerRepository, logger *zap.Logger) SaleService {
	return &saleService{
		sales:     sales,
		customers: customers,
		logger:    logger,
	}
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.sales.FindAll()
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.sales.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sale")
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) GetPurchasesByEmail(email string) ([]model.Sale, error) {
	customer, err := s.customers.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.Sale{}, nil
		}
		return nil, err
	}
	return s.sales.FindByCustomerID(customer.ID)
}

func (s *saleService) BackfillClientTypes() (int, int, error) {
	// Individual reads go through the connection-retry decorator: this
	// endpoint walks the whole sales table and is the one most exposed to
	// pooled-proxy connection drops.
	sales, err := retry.WithConnRetry(func() ([]model.Sale, error) {
		return s.sales.FindMissingClientType()
	})
	if err != nil {
		if retry.IsConnectivity(err) {
			return 0, 0, apperr.Transient(err)
		}
		return 0, 0, err
	}

	updated := 0
	for _, sale := range sales {
		if len(sale.Items) == 0 {
			continue
		}

		ids := make([]*uuid.UUID, len(sale.Items))
		for i, item := range sale.Items {
			ids[i] = item.Product.ClientTypeID
		}
		clientTypeID := mostCommonClientType(ids)
		if clientTypeID == nil {
			continue
		}

		if _, err := retry.WithConnRetry(func() (struct{}, error) {
			return struct{}{}, s.sales.UpdateClientType(sale.ID, *clientTypeID)
		}); err != nil {
			return updated, len(sales), err
		}
		updated++
	}

	s.logger.Info("client type backfill finished",
		zap.Int("scanned", len(sales)),
		zap.Int("updated", updated),
	)
	return updated, len(sales), nil
}
