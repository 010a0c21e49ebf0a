package models

import "time"

// KVPair is one namespaced key and its serialized value. The application
// document persists as a single row under the configured document key, so
// namespace scans stay cheap.
type KVPair struct {
	Key       string `gorm:"primaryKey;type:text"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table shared by the SQLite and Postgres drivers.
func (KVPair) TableName() string { return "kv_pairs" }
