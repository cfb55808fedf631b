package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
)

// DefaultSessionTTL bounds how long an issued token stays valid.
const DefaultSessionTTL = 24 * time.Hour

const keyPrefix = "pizza:sessions"

var _ userports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps tokens in Redis. Each user also has a set of their tokens
// so DeleteUser can revoke all of them.
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, token string, userID int64) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is required")
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(token), userID, s.ttl)
	pipe.SAdd(ctx, userKey(userID), token)
	pipe.Expire(ctx, userKey(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Lookup(ctx context.Context, token string) (int64, error) {
	if err := s.ensureClient(); err != nil {
		return 0, err
	}
	raw, err := s.client.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, userports.ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}
	return id, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	id, err := s.Lookup(ctx, token)
	if errors.Is(err, userports.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, tokenKey(token))
	pipe.SRem(ctx, userKey(id), token)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *SessionStore) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	tokens, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, tokenKey(token))
	}
	keys = append(keys, userKey(userID))
	return s.client.Del(ctx, keys...).Err()
}

func (s *SessionStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	return nil
}

func tokenKey(token string) string {
	return keyPrefix + ":token:" + token
}

func userKey(userID int64) string {
	return keyPrefix + ":user:" + strconv.FormatInt(userID, 10)
}
