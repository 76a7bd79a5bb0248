// Package admin backs the administrator console: user moderation, the
// security audit trail and chat history exports.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/users"
	"github.com/ecohealth/sentinel/pkg/logger"
)

var ErrUserNotFound = apperr.NotFound("User not found")

const maxLogs = 100

type Service struct {
	users *users.Service
	logs  repository.Collection[models.SecurityLog]
	chats repository.Collection[models.ChatMessage]
	now   func() time.Time
}

func NewService(u *users.Service, b *repository.Backend) *Service {
	return &Service{
		users: u,
		logs:  repository.For[models.SecurityLog](b, models.SecurityLogs),
		chats: repository.For[models.ChatMessage](b, models.ChatMessages),
		now:   time.Now,
	}
}

// Actor identifies who performed an administrative action.
type Actor struct {
	Name string
	IP   string
}

// Users lists accounts; "all" for role or status means no filter.
func (s *Service) Users(ctx context.Context, f users.ListFilter) ([]models.User, error) {
	if f.Role == "all" {
		f.Role = ""
	}
	if f.Status == "all" {
		f.Status = ""
	}
	return s.users.List(ctx, f)
}

func (s *Service) SetStatus(ctx context.Context, id, status string, by Actor) (*models.User, error) {
	u, err := s.users.SetStatus(ctx, id, status)
	switch {
	case errors.Is(err, users.ErrInvalidStatus):
		return nil, apperr.Wrap(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("update user status: %w", err)
	}

	kind, action := "danger", "User suspended"
	if status == models.UserActive {
		kind, action = "success", "User activated"
	}
	s.audit(ctx, &models.SecurityLog{
		Type:    kind,
		Action:  action,
		User:    by.Name,
		IP:      by.IP,
		Details: fmt.Sprintf("%s status changed to %s", u.Name, status),
		Domain:  u.Domain,
	})
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string, by Actor) error {
	u, err := s.users.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.audit(ctx, &models.SecurityLog{
		Type:    "danger",
		Action:  "User deleted",
		User:    by.Name,
		IP:      by.IP,
		Details: fmt.Sprintf("%s was deleted from the system", u.Name),
		Domain:  u.Domain,
	})
	return nil
}

// audit never fails the calling action.
func (s *Service) audit(ctx context.Context, l *models.SecurityLog) {
	l.Timestamp = s.now().UTC()
	if err := s.logs.Insert(ctx, l); err != nil {
		logger.Warnf("security log not saved (%s): %v", l.Action, err)
	}
}

// Logs returns the newest security events.
func (s *Service) Logs(ctx context.Context) ([]models.SecurityLog, error) {
	return s.logs.Find(ctx, repository.Query{SortBy: "timestamp", Desc: true, Limit: maxLogs})
}
