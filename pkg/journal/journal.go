package journal

import (
	"encoding/json"
	"fmt"

	"github.com/cuemby/hutch/pkg/events"
	"github.com/cuemby/hutch/pkg/log"
	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

var bucketMutations = []byte("mutations")

// Journal is a persistent, append-only record of DNS mutations and app
// lifecycle events. It exists for diagnostics: after the reconciler gives up
// on a failing zone at grace expiry, the journal is the only place the
// resulting orphaned records can be discovered.
type Journal struct {
	db     *bolt.DB
	sub    events.Subscriber
	logger zerolog.Logger
}

// Open opens (or creates) the journal database at path
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMutations)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal bucket: %w", err)
	}

	return &Journal{
		db:     db,
		logger: log.WithComponent("journal"),
	}, nil
}

// Close closes the journal database
func (j *Journal) Close() error {
	return j.db.Close()
}

// key orders entries chronologically; the event ID breaks ties
func key(event *events.Event) []byte {
	return []byte(fmt.Sprintf("%020d/%s", event.Timestamp.UnixNano(), event.ID))
}

// Append persists a single event
func (j *Journal) Append(event *events.Event) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMutations)
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return b.Put(key(event), data)
	})
}

// Recent returns up to n events, newest first
func (j *Journal) Recent(n int) ([]*events.Event, error) {
	var out []*events.Event
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketMutations).Cursor()
		for k, v := c.Last(); k != nil && len(out) < n; k, v = c.Prev() {
			var event events.Event
			if err := json.Unmarshal(v, &event); err != nil {
				return err
			}
			out = append(out, &event)
		}
		return nil
	})
	return out, err
}

// Follow subscribes to the broker and persists every event it delivers. The
// consumer goroutine exits when the subscription is closed via Unfollow.
func (j *Journal) Follow(broker *events.Broker) {
	j.sub = broker.Subscribe()
	go func() {
		for event := range j.sub {
			if err := j.Append(event); err != nil {
				j.logger.Error().Err(err).Str("event", string(event.Type)).Msg("Failed to journal event")
			}
		}
	}()
}

// Unfollow cancels the broker subscription started by Follow
func (j *Journal) Unfollow(broker *events.Broker) {
	if j.sub != nil {
		broker.Unsubscribe(j.sub)
		j.sub = nil
	}
}
