package service

import (
	"errors"

	"go-retail-ws/internal/apperr"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductInput is the create/update payload for products. Price and stock
// tolerate string-or-number values like the rest of the API.
type ProductInput struct {
	Name         string          `json:"name" validate:"required,min=2,max=100"`
	Description  *string         `json:"description,omitempty"`
	Price        model.FlexFloat `json:"price" validate:"gt=0"`
	Stock        model.FlexInt   `json:"stock" validate:"gte=0"`
	Image        *string         `json:"image,omitempty"`
	CategoryID   *uuid.UUID      `json:"categoryId,omitempty"`
	ClientTypeID *uuid.UUID      `json:"clientTypeId,omitempty"`
	Sizes        []string        `json:"sizes,omitempty"`
}

type CatalogService interface {
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	CreateProduct(input *ProductInput) (*model.Product, error)
	UpdateProduct(id uuid.UUID, input *ProductInput) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error

	GetCategories() ([]model.Category, error)
	GetSizes() ([]model.Size, error)
	GetClientTypes() ([]model.ClientType, error)
}

type catalogService struct {
	products repository.ProductRepository
	catalog  repository.CatalogRepository
	logger   *zap.Logger
}

func NewCatalogService(products repository.ProductRepository, catalog repository.CatalogRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		products: products,
		catalog:  catalog,
		logger:   logger,
	}
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.products.FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) CreateProduct(input *ProductInput) (*model.Product, error) {
	if msg := validator.FirstError(input); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	sizes, err := s.resolveSizes(input.Sizes)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price.Float(),
		Stock:        input.Stock.Int(),
		Image:        input.Image,
		CategoryID:   input.CategoryID,
		ClientTypeID: input.ClientTypeID,
		Sizes:        sizes,
	}
	if err := s.products.Create(product); err != nil {
		return nil, apperr.ClassifyDB(err)
	}

	s.logger.Info("product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	return s.GetProductByID(product.ID)
}

func (s *catalogService) UpdateProduct(id uuid.UUID, input *ProductInput) (*model.Product, error) {
	if msg := validator.FirstError(input); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	sizes, err := s.resolveSizes(input.Sizes)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price.Float()
	product.Stock = input.Stock.Int()
	product.Image = input.Image
	product.CategoryID = input.CategoryID
	product.ClientTypeID = input.ClientTypeID

	if err := s.products.Update(product); err != nil {
		return nil, apperr.ClassifyDB(err)
	}
	if err := s.products.ReplaceSizes(product, sizes); err != nil {
		return nil, err
	}

	return s.GetProductByID(id)
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}
	return s.products.Delete(id)
}

// resolveSizes maps size labels to catalog rows; an unknown label is a
// validation failure, matching the storefront contract.
func (s *catalogService) resolveSizes(names []string) ([]model.Size, error) {
	if len(names) == 0 {
		return nil, nil
	}
	sizes, err := s.catalog.SizesByName(names)
	if err != nil {
		return nil, err
	}
	if len(sizes) != len(names) {
		known := make(map[string]struct{}, len(sizes))
		for _, size := range sizes {
			known[size.Name] = struct{}{}
		}
		for _, name := range names {
			if _, ok := known[name]; !ok {
				return nil, apperr.Validation("size %q not found", name)
			}
		}
	}
	return sizes, nil
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.catalog.Categories()
}

func (s *catalogService) GetSizes() ([]model.Size, error) {
	return s.catalog.Sizes()
}

func (s *catalogService) GetClientTypes() ([]model.ClientType, error) {
	return s.catalog.ClientTypes()
}
