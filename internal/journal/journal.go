// Package journal keeps a durable record of fired price alerts so that
// recent triggers can still be listed after a restart.
package journal

import (
	"encoding/json"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"CoinSentinel/internal/model"
)

// firedPrefix starts the key of every alert entry: fired/<coin>/<alert>.
const firedPrefix = "fired/"

var errNotOpen = errors.New("alert journal not open")

// Journal appends alert events to a write-ahead log. Indexes start at 1
// and grow by one per event.
type Journal struct {
	mu  sync.RWMutex
	wal *gowal.Wal
}

// Open opens the journal in dir, creating the directory if needed.
// An empty dir means data/journal.
func Open(dir string) (*Journal, error) {
	if dir == "" {
		dir = "data/journal"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "journal dir %s", dir)
	}

	// 100 segments of 1000 events; the oldest segment is dropped beyond that
	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "alerts_",
		SegmentThreshold: 1000,
		MaxSegments:      100,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open alert journal in %s", dir)
	}
	return &Journal{wal: wal}, nil
}

func firedKey(ev model.AlertEvent) string {
	return firedPrefix + ev.CoinID + "/" + ev.AlertID
}

// Append records ev and returns the index it was stored under.
func (j *Journal) Append(ev model.AlertEvent) (uint64, error) {
	if j == nil || j.wal == nil {
		return 0, errNotOpen
	}
	if ev.AlertID == "" {
		return 0, errors.New("alert event without alert id")
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return 0, errors.Wrapf(err, "encode event for alert %s", ev.AlertID)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	next := j.wal.CurrentIndex() + 1
	if err := j.wal.Write(next, firedKey(ev), payload); err != nil {
		return 0, errors.Wrapf(err, "journal alert %s", ev.AlertID)
	}
	return next, nil
}

// read returns the event at idx. ok is false for indexes that were rotated
// away or hold something other than an alert event.
func (j *Journal) read(idx uint64) (rec model.AlertEventRecord, ok bool, err error) {
	key, payload, found := j.wal.Get(idx)
	if !found || !strings.HasPrefix(key, firedPrefix) {
		return rec, false, nil
	}
	if err := json.Unmarshal(payload, &rec.Event); err != nil {
		return rec, false, errors.Wrapf(err, "journal entry %d", idx)
	}
	rec.Index = idx
	return rec, true, nil
}

// EventsAfter returns the events stored after index, oldest first.
func (j *Journal) EventsAfter(index uint64) ([]model.AlertEventRecord, error) {
	if j == nil || j.wal == nil {
		return nil, errNotOpen
	}
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []model.AlertEventRecord
	for idx := index + 1; idx <= j.wal.CurrentIndex(); idx++ {
		rec, ok, err := j.read(idx)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Recent returns the last n events, oldest first.
func (j *Journal) Recent(n int) ([]model.AlertEventRecord, error) {
	if j == nil || j.wal == nil {
		return nil, errNotOpen
	}
	if n <= 0 {
		return nil, nil
	}
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]model.AlertEventRecord, 0, n)
	for idx := j.wal.CurrentIndex(); idx > 0 && len(out) < n; idx-- {
		rec, ok, err := j.read(idx)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	slices.Reverse(out)
	return out, nil
}

// CurrentIndex is the index of the last entry, 0 for an empty journal.
func (j *Journal) CurrentIndex() uint64 {
	if j == nil || j.wal == nil {
		return 0
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.wal.CurrentIndex()
}

func (j *Journal) Close() error {
	if j == nil || j.wal == nil {
		return errNotOpen
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.wal.Close()
}
