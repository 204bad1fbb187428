package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"academy-enrollment-api/internal/cache"
	"academy-enrollment-api/internal/features"
	"academy-enrollment-api/internal/models"
	"academy-enrollment-api/internal/validation"
)

// bonusValue is the percentage value of the standard referral bonus.
const bonusValue = 20

// RecordReferral attributes a referred signup to the caller. The referral
// insert is authoritative. The referrer's bonus is issued immediately,
// before the referral ever completes; the gate_bonus_on_completion flag
// defers it to the completion transition instead. Bonus issuance is
// best-effort either way.
func (s *Service) RecordReferral(ctx context.Context, referrerID string, req models.ReferralRequest) (models.ReferralResponse, error) {
	if err := validation.ValidateUUID(req.ReferredUserID, "referredUserId"); err != nil {
		return models.ReferralResponse{}, err
	}

	bonusType := validation.SanitizeString(req.BonusType)
	if bonusType == "" {
		bonusType = models.DefaultBonusType
	}

	referral := models.Referral{
		ID:             uuid.New().String(),
		ReferrerID:     referrerID,
		ReferredUserID: req.ReferredUserID,
		BonusType:      bonusType,
		Status:         models.ReferralPending,
		CreatedAt:      s.now(),
	}

	if err := s.db.InsertReferral(referral); err != nil {
		return models.ReferralResponse{}, fmt.Errorf("failed to record referral: %w", err)
	}

	if !s.flags.IsEnabled(features.FeatureGateBonusOnCompletion) {
		s.issueBonus(ctx, referrerID, bonusType)
	}

	s.events.PublishReferralRecorded(ctx, referral)
	s.invalidateReferralStats(ctx, referrerID)

	return models.ReferralResponse{
		Success:    true,
		ReferralID: referral.ID,
		Message:    "Referral tracked!",
	}, nil
}

// issueBonus grants the standard bonus to a user. Best-effort: failures
// are logged, never surfaced.
func (s *Service) issueBonus(ctx context.Context, userID, bonusType string) {
	now := s.now()
	bonus := models.Bonus{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      bonusType,
		Value:     bonusValue,
		IssuedAt:  now,
		ExpiresAt: now.AddDate(0, 0, models.BonusValidityDays),
	}

	if err := s.db.InsertBonus(bonus); err != nil {
		s.log.Warn("bonus issuance failed",
			zap.String("user_id", userID),
			zap.String("bonus_type", bonusType),
			zap.Error(err))
		return
	}

	s.events.PublishBonusIssued(ctx, bonus)
}

// ReferralStats returns the caller's referral aggregates and unexpired
// bonuses. Reads are idempotent; repeated calls with no intervening
// writes return identical totals. Served from cache when enabled.
func (s *Service) ReferralStats(ctx context.Context, referrerID string) (models.ReferralStatsResponse, error) {
	key := cache.ReferralStatsKey(referrerID)

	if s.cacheEnabled() {
		var cached models.ReferralStatsResponse
		if err := cache.GetJSON(ctx, s.cache, key, &cached); err == nil {
			return cached, nil
		}
	}

	referrals, err := s.db.ListReferralsByReferrer(referrerID)
	if err != nil {
		return models.ReferralStatsResponse{}, err
	}

	stats := models.ReferralStatsResponse{
		TotalReferrals:   len(referrals),
		AvailableBonuses: []models.Bonus{},
	}
	for _, r := range referrals {
		switch r.Status {
		case models.ReferralCompleted:
			stats.SuccessfulReferrals++
		default:
			stats.PendingReferrals++
		}
	}

	bonuses, err := s.db.AvailableBonuses(referrerID, s.now())
	if err != nil {
		return models.ReferralStatsResponse{}, err
	}
	if bonuses != nil {
		stats.AvailableBonuses = bonuses
	}

	if s.cacheEnabled() {
		if err := cache.SetJSON(ctx, s.cache, key, stats, cache.TTLReferralStats); err != nil {
			s.log.Debug("referral stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

// CompleteReferral transitions a pending referral to completed. When
// bonus issuance is gated on completion, the deferred bonus lands here.
func (s *Service) CompleteReferral(ctx context.Context, referralID string) error {
	referral, err := s.db.GetReferral(referralID)
	if err != nil {
		return err
	}
	if referral == nil {
		return ErrReferralNotFound
	}

	done, err := s.db.CompleteReferral(referralID, s.now())
	if err != nil {
		return err
	}
	if !done {
		return ErrReferralNotFound
	}

	if s.flags.IsEnabled(features.FeatureGateBonusOnCompletion) {
		s.issueBonus(ctx, referral.ReferrerID, referral.BonusType)
	}

	s.invalidateReferralStats(ctx, referral.ReferrerID)

	return nil
}

func (s *Service) invalidateReferralStats(ctx context.Context, referrerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.ReferralStatsKey(referrerID)); err != nil {
		s.log.Debug("referral stats cache invalidation failed", zap.Error(err))
	}
}
