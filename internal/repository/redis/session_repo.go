package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/cfg"
	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/repository/redis/converter"
	"github.com/DRSN-tech/pos-terminal/pkg/clients"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SessionRepo хранит одну кассу на сессию кассира. Каждое сохранение продлевает
// TTL сессии, поэтому брошенные кассы истекают сами.
type SessionRepo struct {
	client *clients.RedisClient
	conv   converter.RegisterConverter
	cfg    *cfg.RedisCfg
}

func NewSessionRepo(client *clients.RedisClient, cfg *cfg.RedisCfg) *SessionRepo {
	return &SessionRepo{
		client: client,
		cfg:    cfg,
	}
}

func (s *SessionRepo) Get(ctx context.Context, sessionID string) (*domain.Register, error) {
	data, err := s.client.Client.Get(ctx, registerKey(sessionID)).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.RegisterRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToDomain(&model), nil
}

func (s *SessionRepo) Save(ctx context.Context, register *domain.Register) error {
	data, err := json.Marshal(s.conv.ToRedisModel(register))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, registerKey(register.SessionID), data, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, registerKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// AcquireSubmitLock помечает отправку продажи как выполняющуюся. TTL снимает
// блокировку, если процесс упадет, не освободив ее.
func (s *SessionRepo) AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.Client.SetNX(ctx, submitLockKey(sessionID), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return ok, nil
}

func (s *SessionRepo) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, submitLockKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func registerKey(sessionID string) string {
	return fmt.Sprintf("register:%s", sessionID)
}

func submitLockKey(sessionID string) string {
	return fmt.Sprintf("register:%s:submit", sessionID)
}
