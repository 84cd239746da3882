package booking

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"
)

// SelectionStore keeps each user's in-progress selection in Redis so
// it survives across requests.  Entries expire after the configured
// TTL; an expired selection simply reads back empty, which the seat
// page treats as "nothing selected yet".
type SelectionStore struct {
    client *redis.Client
    ttl    time.Duration
}

// NewSelectionStore returns a store writing under "selection:<user>"
// keys with the given TTL.  A non-positive TTL defaults to 30
// minutes.
func NewSelectionStore(client *redis.Client, ttl time.Duration) *SelectionStore {
    if ttl <= 0 {
        ttl = 30 * time.Minute
    }
    return &SelectionStore{client: client, ttl: ttl}
}

func selectionKey(userID uint64) string {
    return fmt.Sprintf("selection:%d", userID)
}

// Get loads the user's selection.  A missing key yields an empty
// selection, not an error.
func (s *SelectionStore) Get(ctx context.Context, userID uint64) (*Selection, error) {
    data, err := s.client.Get(ctx, selectionKey(userID)).Bytes()
    if err == redis.Nil {
        return &Selection{}, nil
    }
    if err != nil {
        return nil, err
    }
    var sel Selection
    if err := json.Unmarshal(data, &sel); err != nil {
        return nil, err
    }
    return &sel, nil
}

// Save writes the selection back and refreshes its TTL.
func (s *SelectionStore) Save(ctx context.Context, userID uint64, sel *Selection) error {
    payload, err := json.Marshal(sel)
    if err != nil {
        return err
    }
    return s.client.Set(ctx, selectionKey(userID), payload, s.ttl).Err()
}

// Clear removes the user's selection.  Deleting a missing key is not
// an error.
func (s *SelectionStore) Clear(ctx context.Context, userID uint64) error {
    return s.client.Del(ctx, selectionKey(userID)).Err()
}
