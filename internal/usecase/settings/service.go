package settings

import (
	"context"
	"errors"
	"log"
	"sync"

	"jobboard/internal/domain/settings"
	"jobboard/internal/usecase"
)

var (
	ErrInvalidInput = errors.New("invalid settings")
	ErrInternal     = errors.New("internal error")
)

// Service keeps the current settings in memory. Reads never touch the store.
type Service struct {
	store   settings.Store
	changes usecase.ChangePublisher
	logger  *log.Logger

	mu      sync.RWMutex
	current settings.Settings
}

func NewService(store settings.Store, changes usecase.ChangePublisher, logger *log.Logger) *Service {
	return &Service{store: store, changes: changes, logger: logger, current: settings.Defaults()}
}

// Load reads the persisted settings once. A store without a saved row keeps
// the defaults.
func (s *Service) Load(ctx context.Context) error {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			s.logf("[Settings] no saved settings, using defaults")
			return nil
		}
		return err
	}
	if err := loaded.Validate(); err != nil {
		s.logf("[Settings] saved settings invalid, using defaults: %v", err)
		return nil
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	s.logf("[Settings] loaded")
	return nil
}

func (s *Service) Get() settings.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Service) Update(ctx context.Context, next settings.Settings) (settings.Settings, error) {
	if err := next.Validate(); err != nil {
		return settings.Settings{}, ErrInvalidInput
	}
	return s.save(ctx, next)
}

func (s *Service) Reset(ctx context.Context) (settings.Settings, error) {
	return s.save(ctx, settings.Defaults())
}

func (s *Service) save(ctx context.Context, next settings.Settings) (settings.Settings, error) {
	if err := s.store.Save(ctx, next); err != nil {
		s.logf("[Settings] save failed: %v", err)
		return settings.Settings{}, ErrInternal
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	// analytics options come from settings
	if s.changes != nil {
		s.changes.Publish(ctx, usecase.Change{})
	}
	s.logf("[Settings] saved")
	return next, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
