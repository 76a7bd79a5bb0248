package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrSuspended          = errors.New("Account suspended")
	ErrInvalidStatus      = errors.New("status must be active or suspended")
)

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Domain   string `json:"domain"`
}

// ListFilter narrows the admin user listing. Empty fields match everything.
type ListFilter struct {
	Role   string
	Status string
	Search string
}

// Service encapsulates user-related business logic
type Service struct {
	repo repository.Collection[models.User]
	cost int
	now  func() time.Time
}

func NewService(repo repository.Collection[models.User]) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost, now: time.Now}
}

// Register hashes the password and stores a new active user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Domain:       in.Domain,
		Status:       models.UserActive,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks credentials and records the login.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Status == models.UserSuspended {
		return nil, ErrSuspended
	}
	now := s.now().UTC()
	u.LoginCount++
	u.LastLogin = &now
	if err := s.repo.Update(ctx, u.ID, map[string]interface{}{"loginCount": u.LoginCount, "lastLogin": now}); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail returns (nil, nil) when no user has the address.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.repo.FindOne(ctx, repository.Query{Filters: []repository.Filter{
		repository.Where("email", repository.Eq, strings.ToLower(strings.TrimSpace(email))),
	}})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.Get(ctx, id)
}

// List returns users newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.User, error) {
	q := repository.Query{SortBy: "createdAt", Desc: true}
	if f.Role != "" {
		q.Filters = append(q.Filters, repository.Where("role", repository.Eq, f.Role))
	}
	if f.Status != "" {
		q.Filters = append(q.Filters, repository.Where("status", repository.Eq, f.Status))
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := regexp.QuoteMeta(term)
		q.AnyOf = []repository.Filter{
			repository.Where("name", repository.Regex, pattern),
			repository.Where("email", repository.Regex, pattern),
		}
	}
	return s.repo.Find(ctx, q)
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (*models.User, error) {
	if status != models.UserActive && status != models.UserSuspended {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, repository.Query{})
}
