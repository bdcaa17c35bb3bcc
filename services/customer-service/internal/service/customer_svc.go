package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Selma23042/hotel-management-systeme/pkg/auth"
	"github.com/Selma23042/hotel-management-systeme/services/customer-service/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	ByID(ctx context.Context, id string) (*domain.Customer, error)
	ByEmail(ctx context.Context, email string) (*domain.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	All(ctx context.Context) ([]domain.Customer, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	Address     string
	City        string
	Country     string
}

type AuthResult struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CustomerSvc struct {
	repo     CustomerRepository
	tokenTTL time.Duration
}

func NewCustomerSvc(r CustomerRepository, tokenTTL time.Duration) *CustomerSvc {
	return &CustomerSvc{repo: r, tokenTTL: tokenTTL}
}

func (s *CustomerSvc) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(in.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	c := &domain.Customer{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		City:         in.City,
		Country:      in.Country,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	token, err := auth.CreateAccessToken(c.ID, c.Email, c.FullName(), s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Email: c.Email, FirstName: c.FirstName, LastName: c.LastName}, nil
}

func (s *CustomerSvc) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	c, err := s.repo.ByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := auth.CreateAccessToken(c.ID, c.Email, c.FullName(), s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Email: c.Email, FirstName: c.FirstName, LastName: c.LastName}, nil
}

func (s *CustomerSvc) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.ByID(ctx, id)
}

func (s *CustomerSvc) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.repo.ByEmail(ctx, strings.ToLower(email))
}

func (s *CustomerSvc) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.All(ctx)
}

func (s *CustomerSvc) Update(ctx context.Context, id string, fields map[string]any) (*domain.Customer, error) {
	// password and email are not updatable through the profile path
	delete(fields, "email")
	delete(fields, "password_hash")
	if len(fields) == 0 {
		return s.repo.ByID(ctx, id)
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

func (s *CustomerSvc) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
