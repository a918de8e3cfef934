// Package settings provides the application settings singleton.
package settings

import (
	"time"
)

// AppType is the type tag of the one settings record.
const AppType = "app_settings"

// Settings holds user preferences. At most one record exists.
type Settings struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Currency      string     `json:"currency"`
	Notifications bool       `json:"notifications"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
