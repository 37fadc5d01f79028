package dropdowns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabapdb/sourcing-pettycash/internal/config"
	"github.com/gabapdb/sourcing-pettycash/internal/totals"
	"github.com/gabapdb/sourcing-pettycash/internal/watch"

	"go.uber.org/zap"
)

var (
	ErrEmptyOption     = errors.New("dropdown option must not be empty")
	ErrDuplicateOption = errors.New("dropdown option already exists")
)

// Service maintains per-client, per-category dropdown value lists: a fixed
// default list unioned with persisted options. Options are append-only.
type Service struct {
	repo OptionRepository
	cfg  *config.Config
	hub  *watch.Hub[[]string]
	log  *zap.Logger
}

func NewService(repo OptionRepository, cfg *config.Config, hub *watch.Hub[[]string], log *zap.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, hub: hub, log: log}
}

func topic(clientID, category string) string {
	return fmt.Sprintf("dropdowns/%s/%s", clientID, category)
}

// Options returns the visible list: defaults first, then persisted options
// in insertion order, deduplicated case-insensitively.
func (s *Service) Options(clientID, category string) ([]string, error) {
	persisted, err := s.repo.ListOptions(clientID, category)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var combined []string
	for _, value := range s.cfg.DropdownDefaults(category) {
		key := strings.ToLower(value)
		if !seen[key] {
			seen[key] = true
			combined = append(combined, value)
		}
	}
	for _, opt := range persisted {
		key := strings.ToLower(opt.Value)
		if !seen[key] {
			seen[key] = true
			combined = append(combined, opt.Value)
		}
	}

	return combined, nil
}

// AddOption persists a new value unless an equal one (ignoring case) is
// already visible. The option list is never mutated on failure.
func (s *Service) AddOption(clientID, category, value string) error {
	trimmed := totals.SafeText(value)
	if trimmed == "" {
		return ErrEmptyOption
	}

	visible, err := s.Options(clientID, category)
	if err != nil {
		return err
	}
	for _, existing := range visible {
		if strings.EqualFold(existing, trimmed) {
			return ErrDuplicateOption
		}
	}

	if err := s.repo.InsertOption(clientID, category, trimmed); err != nil {
		return err
	}

	s.publish(clientID, category)
	return nil
}

// Subscribe emits the current option list immediately and again after every
// change until ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context, clientID, category string) (<-chan []string, error) {
	current, err := s.Options(clientID, category)
	if err != nil {
		return nil, err
	}

	updates := s.hub.Subscribe(ctx, topic(clientID, category))

	out := make(chan []string, 1)
	out <- current
	go func() {
		defer close(out)
		for snapshot := range updates {
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *Service) publish(clientID, category string) {
	options, err := s.Options(clientID, category)
	if err != nil {
		s.log.Warn("failed to reload dropdown options for broadcast",
			zap.String("clientId", clientID),
			zap.String("category", category),
			zap.Error(err),
		)
		return
	}
	s.hub.Publish(topic(clientID, category), options)
}
