package packing

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/pkg/session"
)

type Service interface {
	Get(ctx context.Context) (List, error)
	// Toggle stores checked as the item's state.
	Toggle(ctx context.Context, item string, checked bool) (List, error)
	// AddItem appends item to category, creating the category when needed.
	AddItem(ctx context.Context, category string, item string) (List, error)
	RemoveItem(ctx context.Context, category string, item string) (List, error)
	AddCategory(ctx context.Context, name string) (List, error)
	// RemoveCategory removes the category together with its items.
	RemoveCategory(ctx context.Context, name string) (List, error)
}

type ServiceImpl struct {
	repo     Repository
	defaults []Category
}

func NewService(repo Repository) *ServiceImpl {
	return NewServiceWithDefaults(repo, DefaultCategories())
}

// NewServiceWithDefaults seeds new sessions with the given categories instead of the built-in list.
func NewServiceWithDefaults(repo Repository, defaults []Category) *ServiceImpl {
	return &ServiceImpl{repo: repo, defaults: defaults}
}

func (s *ServiceImpl) Get(ctx context.Context) (List, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return List{}, fmt.Errorf("failed to get current session: %w", err)
	}
	return s.list(ctx, sessionId)
}

func (s *ServiceImpl) list(ctx context.Context, sessionId string) (List, error) {
	l, err := s.repo.Load(ctx, sessionId)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, ErrListNotFound) {
		return List{}, err
	}
	log.Debugf("seeding packing list for session %s", sessionId)
	return s.repo.Seed(ctx, sessionId, NewList(s.defaults))
}

// mutate runs fn against the seeded list of the current session and returns the list afterwards.
func (s *ServiceImpl) mutate(ctx context.Context, fn func(sessionId string) error) (List, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return List{}, fmt.Errorf("failed to get current session: %w", err)
	}
	if _, err := s.list(ctx, sessionId); err != nil {
		return List{}, err
	}
	if err := fn(sessionId); err != nil {
		return List{}, err
	}
	return s.repo.Load(ctx, sessionId)
}

func (s *ServiceImpl) Toggle(ctx context.Context, item string, checked bool) (List, error) {
	return s.mutate(ctx, func(sessionId string) error {
		return s.repo.SetChecked(ctx, sessionId, item, checked)
	})
}

func (s *ServiceImpl) AddItem(ctx context.Context, category string, item string) (List, error) {
	category, err := normalizeName(category)
	if err != nil {
		return List{}, err
	}
	item, err = normalizeName(item)
	if err != nil {
		return List{}, err
	}
	return s.mutate(ctx, func(sessionId string) error {
		return s.repo.AddItem(ctx, sessionId, category, item)
	})
}

func (s *ServiceImpl) RemoveItem(ctx context.Context, category string, item string) (List, error) {
	return s.mutate(ctx, func(sessionId string) error {
		return s.repo.RemoveItem(ctx, sessionId, category, item)
	})
}

func (s *ServiceImpl) AddCategory(ctx context.Context, name string) (List, error) {
	name, err := normalizeName(name)
	if err != nil {
		return List{}, err
	}
	return s.mutate(ctx, func(sessionId string) error {
		return s.repo.AddCategory(ctx, sessionId, name)
	})
}

func (s *ServiceImpl) RemoveCategory(ctx context.Context, name string) (List, error) {
	return s.mutate(ctx, func(sessionId string) error {
		return s.repo.RemoveCategory(ctx, sessionId, name)
	})
}
