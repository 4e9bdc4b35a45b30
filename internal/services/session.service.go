package services

import (
	"context"
	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	voterSessionPrefix = "session:voter:"
	adminSessionPrefix = "session:admin:"
)

// SessionService keeps voter and admin sessions in the Session cache DB.
// Sessions are opaque tokens; nothing in the core reads anything else out of
// them.
type SessionService struct {
	cache database.CacheClient
	ttl   time.Duration
	log   logger.Logger
}

func NewSessionService(db database.DB, config config.Config) *SessionService {
	ttl := time.Duration(config.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionService{
		cache: db.Cache.Session,
		ttl:   ttl,
		log:   logger.New("SessionService"),
	}
}

func (s *SessionService) CreateVoterSession(ctx context.Context, voterID string) (string, error) {
	return s.create(ctx, voterSessionPrefix, voterID)
}

func (s *SessionService) GetVoterSession(ctx context.Context, token string) (string, error) {
	return s.get(ctx, voterSessionPrefix, token)
}

func (s *SessionService) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	return s.create(ctx, adminSessionPrefix, adminID)
}

func (s *SessionService) GetAdminSession(ctx context.Context, token string) (string, error) {
	return s.get(ctx, adminSessionPrefix, token)
}

func (s *SessionService) DeleteAdminSession(ctx context.Context, token string) error {
	return s.delete(ctx, adminSessionPrefix, token)
}

func (s *SessionService) DeleteVoterSession(ctx context.Context, token string) error {
	return s.delete(ctx, voterSessionPrefix, token)
}

func (s *SessionService) create(ctx context.Context, prefix, id string) (string, error) {
	log := s.log.Function("create")

	token := uuid.New().String()
	cmd := s.cache.B().Set().Key(prefix + token).Value(id).Ex(s.ttl).Build()
	if err := s.cache.Do(ctx, cmd).Error(); err != nil {
		return "", log.Err("failed to store session", err)
	}

	return token, nil
}

func (s *SessionService) get(ctx context.Context, prefix, token string) (string, error) {
	log := s.log.Function("get")

	if token == "" {
		return "", ErrSessionNotFound
	}

	cmd := s.cache.B().Get().Key(prefix + token).Build()
	id, err := s.cache.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", ErrSessionNotFound
		}
		return "", log.Err("failed to read session", err)
	}

	return id, nil
}

func (s *SessionService) delete(ctx context.Context, prefix, token string) error {
	log := s.log.Function("delete")

	cmd := s.cache.B().Del().Key(prefix + token).Build()
	if err := s.cache.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to delete session", err)
	}

	return nil
}
