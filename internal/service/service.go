package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"academy-enrollment-api/internal/cache"
	"academy-enrollment-api/internal/database"
	"academy-enrollment-api/internal/events"
	"academy-enrollment-api/internal/features"
)

// Well-known service errors, mapped to HTTP statuses by the handler.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrReferralNotFound   = errors.New("referral not found or already completed")
	ErrNoCohort           = errors.New("no cohort membership")
	ErrUnknownProgram     = errors.New("unknown program")
)

// TokenSigner issues a session token for an authenticated user.
type TokenSigner func(uid, email string) (string, error)

// Service provides the business logic for the enrollment API. All writes
// follow the same policy: one authoritative write whose failure fails the
// call, then best-effort side effects that are logged and never surfaced.
type Service struct {
	db        *database.DB
	cache     cache.Cache
	events    *events.Manager
	flags     *features.Manager
	log       *zap.Logger
	signToken TokenSigner
	now       func() time.Time
}

// NewService creates a new service instance. cache may be nil when the
// caching layer is disabled.
func NewService(db *database.DB, c cache.Cache, ev *events.Manager, flags *features.Manager, log *zap.Logger, signer TokenSigner) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if flags == nil {
		flags = features.Defaults()
	}
	if ev == nil {
		ev = events.NewManager(false)
	}
	return &Service{
		db:        db,
		cache:     c,
		events:    ev,
		flags:     flags,
		log:       log,
		signToken: signer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// cacheEnabled reports whether reads may be served from cache.
func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.flags.IsEnabled(features.FeatureCacheEnabled)
}
