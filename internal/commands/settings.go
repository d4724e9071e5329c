package commands

import (
	"context"

	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
)

// SaveSetting stores a setting and announces the new value.
func (s *Service) SaveSetting(ctx context.Context, key, value string) error {
	if err := s.store.SaveSetting(ctx, key, value); err != nil {
		return err
	}
	s.bus.Publish(ctx, event.SettingUpdated{Key: key, Value: value})
	return nil
}

// ReadSetting returns a setting; ok is false when it is unset.
func (s *Service) ReadSetting(ctx context.Context, key string) (model.Setting, bool, error) {
	return s.store.ReadSetting(ctx, key)
}

// ReadAllSettings returns every stored setting ordered by key.
func (s *Service) ReadAllSettings(ctx context.Context) ([]model.Setting, error) {
	return s.store.ReadAllSettings(ctx)
}
