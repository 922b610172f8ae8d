package store

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"CoinSentinel/internal/model"
)

// Keys of the persisted state entries.
const (
	KeyHoldings = "portfolioHoldings"
	KeyAlerts   = "priceAlerts"
)

// SchemaVersion is written into every envelope.
const SchemaVersion = 1

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("state key not found")

// StateStore is a small key-value store holding serialized documents.
// Save overwrites the whole value.
type StateStore interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}

type envelope[T any] struct {
	SchemaVersion int `json:"schema_version"`
	Items         []T `json:"items"`
}

func encodeItems[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(envelope[T]{SchemaVersion: SchemaVersion, Items: items})
}

// decodeItems accepts the versioned envelope and the legacy bare array.
func decodeItems[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []T{}, nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, errors.Wrap(err, "decode legacy list")
		}
		return nonNil(items), nil
	}

	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decode envelope")
	}
	if env.SchemaVersion > SchemaVersion {
		return nil, errors.Errorf("unsupported schema version %d", env.SchemaVersion)
	}
	return nonNil(env.Items), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func loadItems[T any](s StateStore, key string) ([]T, error) {
	data, err := s.Load(key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", key)
	}
	items, err := decodeItems[T](data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", key)
	}
	return items, nil
}

func saveItems[T any](s StateStore, key string, items []T) error {
	data, err := encodeItems(items)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return errors.Wrapf(s.Save(key, data), "save %s", key)
}

// LoadHoldings reads the holding list. A missing entry is an empty list.
func LoadHoldings(s StateStore) ([]model.Holding, error) {
	return loadItems[model.Holding](s, KeyHoldings)
}

// SaveHoldings overwrites the holding list.
func SaveHoldings(s StateStore, holdings []model.Holding) error {
	return saveItems(s, KeyHoldings, holdings)
}

// LoadAlerts reads the alert list. A missing entry is an empty list.
func LoadAlerts(s StateStore) ([]model.PriceAlert, error) {
	return loadItems[model.PriceAlert](s, KeyAlerts)
}

// SaveAlerts overwrites the alert list.
func SaveAlerts(s StateStore, alerts []model.PriceAlert) error {
	return saveItems(s, KeyAlerts, alerts)
}
