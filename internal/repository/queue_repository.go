package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tunewave/tunewave/internal/models"
)

// queueEmptySentinel is the error reply the mutation scripts return when the
// key holds no list, mapped to the queue's not-found.
const queueEmptySentinel = "queue empty"

// The mutation scripts rebuild the list inside a single script call, so
// concurrent observers never see an intermediate state and LINSERT's
// first-occurrence pivot matching never misplaces duplicate track ids.
var (
	queueInsertScript = redis.NewScript(`
local key = KEYS[1]
local len = redis.call('LLEN', key)
if len == 0 then
  return redis.error_reply('` + queueEmptySentinel + `')
end
local pos = tonumber(ARGV[2])
if pos > len then
  pos = len
end
local items = redis.call('LRANGE', key, 0, -1)
table.insert(items, pos + 1, ARGV[1])
redis.call('DEL', key)
redis.call('RPUSH', key, unpack(items))
redis.call('EXPIRE', key, tonumber(ARGV[3]))
return len + 1
`)

	queueMoveScript = redis.NewScript(`
local key = KEYS[1]
local len = redis.call('LLEN', key)
if len == 0 then
  return redis.error_reply('` + queueEmptySentinel + `')
end
local src = tonumber(ARGV[1])
local dest = tonumber(ARGV[2])
if src >= len then
  src = len - 1
end
local items = redis.call('LRANGE', key, 0, -1)
local moved = table.remove(items, src + 1)
if dest > #items then
  dest = #items
end
table.insert(items, dest + 1, moved)
redis.call('DEL', key)
redis.call('RPUSH', key, unpack(items))
redis.call('EXPIRE', key, tonumber(ARGV[3]))
return len
`)

	queueRemoveScript = redis.NewScript(`
local key = KEYS[1]
local len = redis.call('LLEN', key)
if len == 0 then
  return redis.error_reply('` + queueEmptySentinel + `')
end
local pos = tonumber(ARGV[1])
if pos >= len then
  pos = len - 1
end
local items = redis.call('LRANGE', key, 0, -1)
table.remove(items, pos + 1)
redis.call('DEL', key)
if #items > 0 then
  redis.call('RPUSH', key, unpack(items))
  redis.call('EXPIRE', key, tonumber(ARGV[2]))
end
return len - 1
`)
)

// RedisQueueRepository implements QueueRepository on a Redis list per user.
// Clients come from a factory per operation so no connection is held across
// suspension points.
type RedisQueueRepository struct {
	clientFactory func() *redis.Client
	ttl           time.Duration
}

// NewQueueRepository creates a new RedisQueueRepository.
func NewQueueRepository(clientFactory func() *redis.Client, ttl time.Duration) *RedisQueueRepository {
	return &RedisQueueRepository{clientFactory: clientFactory, ttl: ttl}
}

func queueKey(userID int64) string {
	return fmt.Sprintf("queue:%d", userID)
}

// PushLeft prepends a track (play next) and refreshes the TTL.
func (r *RedisQueueRepository) PushLeft(ctx context.Context, userID, trackID int64) error {
	client := r.clientFactory()
	defer client.Close()

	key := queueKey(userID)
	if err := client.LPush(ctx, key, trackID).Err(); err != nil {
		return fmt.Errorf("failed to push track: %w", err)
	}
	if err := client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh queue ttl: %w", err)
	}
	return nil
}

// PushRight appends a track and refreshes the TTL.
func (r *RedisQueueRepository) PushRight(ctx context.Context, userID, trackID int64) error {
	client := r.clientFactory()
	defer client.Close()

	key := queueKey(userID)
	if err := client.RPush(ctx, key, trackID).Err(); err != nil {
		return fmt.Errorf("failed to push track: %w", err)
	}
	if err := client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh queue ttl: %w", err)
	}
	return nil
}

// List reads the slice [offset, offset+limit-1]; limit 0 reads to the end.
// An empty result means the queue does not exist.
func (r *RedisQueueRepository) List(ctx context.Context, userID int64, params models.QueueListParams) (*models.TrackQueue, error) {
	client := r.clientFactory()
	defer client.Close()

	stop := int64(-1)
	if params.Limit > 0 {
		stop = int64(params.Offset + params.Limit - 1)
	}

	key := queueKey(userID)
	raw, err := client.LRange(ctx, key, int64(params.Offset), stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}
	if err := client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to refresh queue ttl: %w", err)
	}
	if len(raw) == 0 {
		return nil, queueNotFound(userID)
	}

	ids := make([]int64, len(raw))
	for i, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("queue holds a non-numeric entry %q: %w", s, err)
		}
		ids[i] = id
	}
	return &models.TrackQueue{TrackIDs: ids}, nil
}

// Delete drops the whole queue.
func (r *RedisQueueRepository) Delete(ctx context.Context, userID int64) error {
	client := r.clientFactory()
	defer client.Close()

	deleted, err := client.Del(ctx, queueKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete queue: %w", err)
	}
	if deleted == 0 {
		return queueNotFound(userID)
	}
	return nil
}

// Insert places a track before the 0-based position, clamped to the end.
func (r *RedisQueueRepository) Insert(ctx context.Context, userID, trackID int64, position int) error {
	client := r.clientFactory()
	defer client.Close()

	err := queueInsertScript.Run(ctx, client, []string{queueKey(userID)},
		trackID, position, int(r.ttl.Seconds())).Err()
	return mapQueueScriptError(err, userID)
}

// Move removes the element at src and reinserts it before dest, both clamped
// to the list bounds.
func (r *RedisQueueRepository) Move(ctx context.Context, userID int64, src, dest int) error {
	client := r.clientFactory()
	defer client.Close()

	err := queueMoveScript.Run(ctx, client, []string{queueKey(userID)},
		src, dest, int(r.ttl.Seconds())).Err()
	return mapQueueScriptError(err, userID)
}

// Remove drops the element at the position, clamped to the last index.
func (r *RedisQueueRepository) Remove(ctx context.Context, userID int64, position int) error {
	client := r.clientFactory()
	defer client.Close()

	err := queueRemoveScript.Run(ctx, client, []string{queueKey(userID)},
		position, int(r.ttl.Seconds())).Err()
	return mapQueueScriptError(err, userID)
}

func mapQueueScriptError(err error, userID int64) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), queueEmptySentinel) {
		return queueNotFound(userID)
	}
	return fmt.Errorf("queue script failed: %w", err)
}

func queueNotFound(userID int64) error {
	return models.NewNotFoundErrorWithCode(models.CodeQueueNotFound, "queue for user", userID)
}
