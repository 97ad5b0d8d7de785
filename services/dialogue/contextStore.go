package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"tabletalk/models"

	"github.com/go-redis/redis/v8"
)

const dialogueStatePrefix = "dialogue:state:"

// StateStore persists per-session dialogue state between turns. It is what
// makes the commit and the weather augmentation happen at most once per
// conversation even when the client replays history.
type StateStore interface {
	Get(ctx context.Context, sessionID string) (*models.DialogueState, error)
	Set(ctx context.Context, sessionID string, state *models.DialogueState) error
	Clear(ctx context.Context, sessionID string) error
}

type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) Get(ctx context.Context, sessionID string) (*models.DialogueState, error) {
	key := dialogueStatePrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.DialogueState{State: models.StateCollecting}, nil
	}
	if err != nil {
		return nil, err
	}
	var state models.DialogueState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStateStore) Set(ctx context.Context, sessionID string, state *models.DialogueState) error {
	key := dialogueStatePrefix + sessionID
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisStateStore) Clear(ctx context.Context, sessionID string) error {
	key := dialogueStatePrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
