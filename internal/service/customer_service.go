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

// CustomerInput is the dashboard create/update payload for customers.
type CustomerInput struct {
	Name         string     `json:"name" validate:"required,min=2,max=100"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string    `json:"phone,omitempty"`
	Address      *string    `json:"address,omitempty"`
	ClientTypeID *uuid.UUID `json:"clientTypeId,omitempty"`
}

type CustomerService interface {
	GetAllCustomers() ([]model.Customer, error)
	GetCustomerByID(id uuid.UUID) (*model.Customer, error)
	CreateCustomer(input *CustomerInput) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, input *CustomerInput) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
}

type customerService struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func NewCustomerService(customers repository.CustomerRepository, logger *zap.Logger) CustomerService {
	return &customerService{customers: customers, logger: logger}
}

func (s *customerService) GetAllCustomers() ([]model.Customer, error) {
	return s.customers.FindAll()
}

func (s *customerService) GetCustomerByID(id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer")
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) CreateCustomer(input *CustomerInput) (*model.Customer, error) {
	if msg := validator.FirstError(input); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	customer := &model.Customer{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		ClientTypeID: input.ClientTypeID,
	}
	if err := s.customers.Create(customer); err != nil {
		return nil, apperr.ClassifyDB(err)
	}

	s.logger.Info("customer created", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

func (s *customerService) UpdateCustomer(id uuid.UUID, input *CustomerInput) (*model.Customer, error) {
	if msg := validator.FirstError(input); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	customer, err := s.GetCustomerByID(id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.ClientTypeID = input.ClientTypeID

	if err := s.customers.Update(customer); err != nil {
		return nil, apperr.ClassifyDB(err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.GetCustomerByID(id); err != nil {
		return err
	}
	return s.customers.Delete(id)
}
