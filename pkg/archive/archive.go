// Package archive persists consumed fault records. The region only ever
// holds the latest record; once the boot-time agent consumes it, the
// record moves here so the history outlives the next fault.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/muninn/pkg/codec"
)

// Entry is an archived fault record.
type Entry struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Line       uint32    `json:"line"`
	Column     uint32    `json:"column"`
	Message    string    `json:"message"`
	ConsumedAt time.Time `json:"consumed_at"`
}

// ErrNotFound is returned by Get for ids with no archived entry.
var ErrNotFound = errors.New("fault record not found")

// Archive is a pebble-backed store of fault entries keyed by ksuid, so key
// order is consumption order and newest-first listing is a reverse scan.
type Archive struct {
	db *pebble.DB
}

// Open opens (creating if needed) the archive at dir.
func Open(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// Put archives a consumed record and returns its id. The write is synced;
// losing a crash report to a second crash would defeat the point.
func (a *Archive) Put(rec *codec.Record) (ksuid.KSUID, error) {
	id := ksuid.New()
	entry := Entry{
		ID:         id.String(),
		Filename:   rec.Filename(),
		Line:       rec.Line,
		Column:     rec.Column,
		Message:    rec.Message(),
		ConsumedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to marshal fault entry: %w", err)
	}
	if err := a.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to archive fault entry: %w", err)
	}
	return id, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (a *Archive) Get(id string) (*Entry, error) {
	key, err := ksuid.Parse(id)
	if err != nil {
		// An unparseable id cannot name an archived entry.
		return nil, fmt.Errorf("invalid fault id %q: %w", id, ErrNotFound)
	}

	data, closer, err := a.db.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read fault entry: %w", err)
	}
	defer closer.Close()

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fault entry: %w", err)
	}
	return &entry, nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (a *Archive) List(limit int) ([]Entry, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate archive: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	for ok := iter.Last(); ok; ok = iter.Prev() {
		if limit > 0 && len(entries) >= limit {
			break
		}
		var entry Entry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fault entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate archive: %w", err)
	}
	return entries, nil
}

// Count returns the number of archived entries.
func (a *Archive) Count() (int, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to iterate archive: %w", err)
	}
	defer iter.Close()

	n := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		n++
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("failed to iterate archive: %w", err)
	}
	return n, nil
}

// Close closes the underlying store.
func (a *Archive) Close() error {
	return a.db.Close()
}
