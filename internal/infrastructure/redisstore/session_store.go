package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-hris/internal/application"
	"github.com/oksasatya/go-hris/internal/domain/apperr"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/pkg/helpers"
)

const sessionPrefix = "hris:session:"

type SessionStore struct {
	rdb redis.Cmdable
}

func NewSessionStore(rdb redis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(sid string) string { return sessionPrefix + sid }

func (s *SessionStore) Save(ctx context.Context, sess *entity.Session, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, s.rdb, sessionKey(sess.ID), sess, ttl)
}

func (s *SessionStore) Get(ctx context.Context, sid string) (*entity.Session, error) {
	var sess entity.Session
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, sessionKey(sid), &sess)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return helpers.RedisDel(ctx, s.rdb, sessionKey(sid))
}

var _ application.SessionStore = (*SessionStore)(nil)
