package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	redisrepo "github.com/studiodesk/studiodesk/internal/repository/redis"
)

// Names of the persisted settings objects. A closed set: a request for
// any other name is an error, not a silent no-op.
const (
	NameAPIKeys       = "api_keys"
	NameGeneral       = "general"
	NameAppearance    = "appearance"
	NameNotifications = "notifications"
)

var known = map[string]bool{
	NameAPIKeys:       true,
	NameGeneral:       true,
	NameAppearance:    true,
	NameNotifications: true,
}

type Service struct {
	store *redisrepo.PreferenceStore
}

func New(store *redisrepo.PreferenceStore) *Service {
	return &Service{store: store}
}

// Get returns the stored settings object, or an empty JSON object if
// the user has never saved it.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, name string) (json.RawMessage, error) {
	const op = "service.settings.Get"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if !known[name] {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownSetting, name)
	}

	v, ok, err := s.store.Get(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return json.RawMessage("{}"), nil
	}

	return v, nil
}

// Save overwrites the settings object. The value must be a valid JSON
// document; its shape is owned by the front end.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, name string, value json.RawMessage) error {
	const op = "service.settings.Save"

	if userID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if !known[name] {
		return fmt.Errorf("%s: %w: %q", op, ErrUnknownSetting, name)
	}

	if !json.Valid(value) {
		return fmt.Errorf("%s: invalid JSON value", op)
	}

	if err := s.store.Set(ctx, userID, name, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
