package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/seedkitapp/seedkit-backend/pkg/db"
	"github.com/seedkitapp/seedkit-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL persists the namespace in the kv_pairs table over SQLite or Postgres.
type SQL struct {
	client *db.Client
	prefix string
}

// NewSQL migrates the kv_pairs table and returns a SQL-backed substrate.
func NewSQL(client *db.Client, prefix string) (*SQL, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if err := client.DB().AutoMigrate(&models.KVPair{}); err != nil {
		return nil, fmt.Errorf("migrating kv_pairs: %w", err)
	}
	return &SQL{client: client, prefix: prefix}, nil
}

// Get returns the value stored under the logical key.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var row models.KVPair
	err := s.client.DB().WithContext(ctx).First(&row, "key = ?", s.prefix+key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return row.Value, true, nil
}

// Set upserts the value under the logical key.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	row := models.KVPair{Key: s.prefix + key, Value: value}
	err := s.client.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes the logical key if present.
func (s *SQL) Delete(ctx context.Context, key string) error {
	err := s.client.DB().WithContext(ctx).Delete(&models.KVPair{}, "key = ?", s.prefix+key).Error
	if err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// ForEach visits every namespaced row in key order. Configured prefixes are
// plain tokens, so the LIKE pattern needs no wildcard escaping.
func (s *SQL) ForEach(ctx context.Context, fn func(key, value string) error) error {
	var rows []models.KVPair
	err := s.client.DB().WithContext(ctx).
		Where("key LIKE ?", s.prefix+"%").
		Order("key").
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("scanning namespace: %w", err)
	}
	for _, row := range rows {
		if err := fn(row.Key, row.Value); err != nil {
			return err
		}
	}
	return nil
}

// Ping verifies the datasource is reachable.
func (s *SQL) Ping(ctx context.Context) error { return s.client.Ping(ctx) }

// Close shuts down the pooled connections.
func (s *SQL) Close() error { return s.client.Close() }
