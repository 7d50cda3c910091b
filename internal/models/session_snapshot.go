package models

import "time"

// SessionSnapshot is the persisted copy of the authentication session. One
// row exists per storage key; the session store rewrites it on every
// mutation and restores it verbatim at startup. No expiry metadata is kept
// locally; token expiry is discovered through a 401 from the backend.
type SessionSnapshot struct {
	StorageKey      string `gorm:"primaryKey;size:64"`
	UserJSON        string `gorm:"type:text"`
	AccessToken     string `gorm:"type:text"`
	RefreshToken    string `gorm:"type:text"`
	IsAuthenticated bool   `gorm:"default:false"`
	UpdatedAt       time.Time
}
