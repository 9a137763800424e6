// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package cache

import (
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

// BadgerStore persists the details namespace on disk so enriched
// organization records survive restarts. Badger expires entries itself
// via entry TTLs; Sweep only triggers value-log garbage collection.
type BadgerStore struct {
	db     *badger.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// OpenBadger opens (or creates) the Badger database at path. Callers
// treat an error as "run memory-only", never as fatal.
func OpenBadger(path string, ttl time.Duration, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{
		db:     db,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache-badger").Logger(),
	}, nil
}

// Get loads a details record. Returns false on miss, expiry, or any
// read error; read errors are logged and treated as misses so a corrupt
// entry never fails a request.
func (b *BadgerStore) Get(key string) (models.CharityDetails, bool) {
	var details models.CharityDetails
	found := false

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &details); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		b.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache read failed, treating as miss")
	}

	return details, found
}

// Set stores a details record with the store's TTL. Write errors are
// logged and swallowed: losing a cache write must not fail the request.
func (b *BadgerStore) Set(key string, details models.CharityDetails) {
	data, err := json.Marshal(details)
	if err != nil {
		b.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache marshal failed")
		return
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		e = e.WithTTL(b.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		b.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache write failed")
	}
}

// Clear drops every entry.
func (b *BadgerStore) Clear() error {
	return b.db.DropAll()
}

// Sweep runs one round of value-log garbage collection. Badger returns
// ErrNoRewrite when there is nothing to reclaim; that is not an error.
func (b *BadgerStore) Sweep() {
	if err := b.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		b.logger.Debug().Err(err).Msg("Value log GC pass failed")
	}
}

// Size returns the on-disk LSM and value-log sizes in bytes.
func (b *BadgerStore) Size() (lsm, vlog int64) {
	return b.db.Size()
}

// Close flushes and closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
