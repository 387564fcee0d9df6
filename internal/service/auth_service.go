package service

import (
	"errors"

	"go-retail-ws/internal/apperr"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/pkg/jwt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Register(name, email, password string) (*model.User, error)
	Login(email, password string) (*LoginResponse, error)
	Profile(email string) (*model.UserResponse, error)
	UpdateProfile(email, name string) (*model.UserResponse, error)
	ChangePassword(email, currentPassword, newPassword string) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	users     repository.UserRepository
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, customers repository.CustomerRepository, logger *zap.Logger) AuthService {
	return &authService{
		users:     users,
		customers: customers,
		logger:    logger,
	}
}

// Register creates a customer-role account. When a customer record already
// exists for the email (e.g. from an earlier anonymous checkout) the new
// account adopts it, otherwise a fresh customer record is created alongside.
func (s *authService) Register(name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("name, email, and password are required")
	}
	if len(password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, apperr.Duplicate("user already exists")
	}

	user := &model.User{
		Name:  name,
		Email: email,
		Role:  model.RoleCustomer,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.users.Create(user); err != nil {
		return nil, apperr.ClassifyDB(err)
	}

	// Link or create the customer record.
	customer, err := s.customers.FindByEmail(email)
	switch {
	case err == nil:
		if customer.UserID == nil {
			customer.UserID = &user.ID
			if err := s.customers.Update(customer); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		customerEmail := email
		newCustomer := &model.Customer{
			Name:   name,
			Email:  &customerEmail,
			UserID: &user.ID,
		}
		if err := s.customers.Create(newCustomer); err != nil {
			return nil, apperr.ClassifyDB(err)
		}
	default:
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) Profile(email string) (*model.UserResponse, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) UpdateProfile(email, name string) (*model.UserResponse, error) {
	if len(name) < 2 {
		return nil, apperr.Validation("name is required and must be at least 2 characters")
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.Name = name
	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) ChangePassword(email, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperr.Validation("current and new password are required")
	}
	if len(newPassword) < 6 {
		return apperr.Validation("new password must be at least 6 characters")
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(currentPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	return s.users.UpdatePassword(user.ID, user.Password)
}
