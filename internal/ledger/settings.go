package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/money"
	"github.com/evcraddock/rent-ledger/internal/settings"
)

// GetSettings returns the settings, creating the defaults on first use.
func (s *Service) GetSettings(ctx context.Context) (_ *settings.Settings, err error) {
	defer s.record("get_settings", &err)

	cur, err := s.store.Settings().Get(ctx)
	if err == nil {
		return cur, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, &StorageError{Op: "reading settings", Err: err}
	}

	def := s.defaultSettings()
	if err := s.store.Settings().Insert(ctx, def); err != nil {
		// A concurrent first read may have created the record already.
		if existing, getErr := s.store.Settings().Get(ctx); getErr == nil {
			return existing, nil
		}
		return nil, &StorageError{Op: "creating settings", Err: err}
	}
	return def, nil
}

// UpdateSettings changes the supplied fields, creating the record first
// if needed.
func (s *Service) UpdateSettings(ctx context.Context, in SettingsInput) (_ *settings.Settings, err error) {
	defer s.record("update_settings", &err)

	if in.Currency != nil && strings.TrimSpace(*in.Currency) == "" {
		return nil, invalid("currency", "must not be empty")
	}

	var out *settings.Settings
	err = s.store.InTx(ctx, func(st Store) error {
		cur, err := st.Settings().Get(ctx)
		switch {
		case errors.Is(err, db.ErrNotFound):
			cur = s.defaultSettings()
			in.apply(cur)
			if err := st.Settings().Insert(ctx, cur); err != nil {
				return &StorageError{Op: "creating settings", Err: err}
			}
		case err != nil:
			return &StorageError{Op: "reading settings", Err: err}
		default:
			in.apply(cur)
			now := s.timestamp()
			cur.UpdatedAt = &now
			if err := st.Settings().Update(ctx, cur); err != nil {
				return &StorageError{Op: "updating settings", Err: err}
			}
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, classify("updating settings", err)
	}
	return out, nil
}

func (s *Service) defaultSettings() *settings.Settings {
	return &settings.Settings{
		ID:            s.newID(),
		Type:          settings.AppType,
		Currency:      money.DefaultSymbol,
		Notifications: true,
		CreatedAt:     s.timestamp(),
	}
}

func (in SettingsInput) apply(cur *settings.Settings) {
	if in.Currency != nil {
		cur.Currency = strings.TrimSpace(*in.Currency)
	}
	if in.Notifications != nil {
		cur.Notifications = *in.Notifications
	}
}
