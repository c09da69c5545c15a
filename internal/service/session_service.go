// internal/service/session_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
)

// SessionListener is notified with the new current user after every session
// transition. The user is nil after logout or when nothing could be restored.
type SessionListener func(ctx context.Context, user *domain.User)

// SessionService defines the interface for the on-device login session.
type SessionService interface {
	Restore(ctx context.Context) *domain.User
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	Logout(ctx context.Context)
	CurrentUser() *domain.User
	IsLoading() bool
	Subscribe(listener SessionListener)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	storage    *repository.Storage
	logger     *slog.Logger
	loginDelay time.Duration // Cosmetic pause before login/signup completes

	mu        sync.RWMutex
	user      *domain.User
	loading   bool
	listeners []SessionListener
}

// NewSessionService creates a new instance of SessionService.
func NewSessionService(storage *repository.Storage, logger *slog.Logger, loginDelay time.Duration) SessionService {
	return &sessionService{
		storage:    storage,
		logger:     logger,
		loginDelay: loginDelay,
		loading:    true,
	}
}

// Restore reads the persisted user record and treats it as logged in without
// further checks. Unreadable or null records fall back to no user.
func (s *sessionService) Restore(ctx context.Context) *domain.User {
	var restored domain.User
	var user *domain.User
	if s.storage.Get(ctx, repository.KeyUserSession, &restored) && restored.Username != "" {
		user = &restored
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()

	if user != nil {
		s.logger.Info("Session restored", "user_id", user.ID, "username", user.Username)
	} else {
		s.logger.Debug("No session to restore")
	}
	s.notify(ctx, user)
	return copyUser(user)
}

// Login starts a session for username. The password is accepted but never
// checked or stored.
func (s *sessionService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("login: %w: username is required", util.ErrInvalidInput)
	}

	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user := domain.NewUser(username)
	if !s.storage.Save(ctx, repository.KeyUserSession, user) {
		s.logger.Warn("Session not persisted, it will be lost on restart", "user_id", user.ID)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	s.notify(ctx, user)
	return copyUser(user), nil
}

// Signup requires username, email and password, then logs in as username.
// Email and password are discarded.
func (s *sessionService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	for _, field := range []struct{ name, value string }{
		{"username", username},
		{"email", email},
		{"password", password},
	} {
		if err := domain.ValidateRequired(field.name, field.value); err != nil {
			return nil, fmt.Errorf("signup: %w", err)
		}
	}
	return s.Login(ctx, username, password)
}

// Logout persists a null user record and clears the current user.
func (s *sessionService) Logout(ctx context.Context) {
	s.storage.Save(ctx, repository.KeyUserSession, nil)

	s.mu.Lock()
	prev := s.user
	s.user = nil
	s.mu.Unlock()

	if prev != nil {
		s.logger.Info("User logged out", "user_id", prev.ID)
	}
	s.notify(ctx, nil)
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *sessionService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

// IsLoading is true until Restore has completed once.
func (s *sessionService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers listener for all future session transitions.
func (s *sessionService) Subscribe(listener SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *sessionService) notify(ctx context.Context, user *domain.User) {
	s.mu.RLock()
	listeners := make([]SessionListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, copyUser(user))
	}
}

func (s *sessionService) wait(ctx context.Context) error {
	if s.loginDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.loginDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
