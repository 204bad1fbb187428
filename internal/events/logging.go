package events

import (
	"context"

	"go.uber.org/zap"
)

// SubscribeLogging attaches a structured-log handler to every event type
// the service publishes.
func SubscribeLogging(m *Manager, log *zap.Logger) {
	m.Subscribe(EventQuizSubmitted, func(ctx context.Context, e Event) error {
		d, ok := e.Data.(QuizSubmittedData)
		if !ok {
			return nil
		}
		log.Info("quiz submitted",
			zap.String("event", string(e.Type)),
			zap.String("user_id", d.UserID),
			zap.String("response_id", d.ResponseID))
		return nil
	})

	m.Subscribe(EventEnrollmentCreated, func(ctx context.Context, e Event) error {
		d, ok := e.Data.(EnrollmentCreatedData)
		if !ok {
			return nil
		}
		log.Info("enrollment created",
			zap.String("event", string(e.Type)),
			zap.String("enrollment_id", d.Enrollment.ID),
			zap.String("user_id", d.Enrollment.UserID),
			zap.String("program_id", d.Enrollment.ProgramID),
			zap.String("cohort_id", d.CohortID))
		return nil
	})

	m.Subscribe(EventReferralRecorded, func(ctx context.Context, e Event) error {
		d, ok := e.Data.(ReferralRecordedData)
		if !ok {
			return nil
		}
		log.Info("referral recorded",
			zap.String("event", string(e.Type)),
			zap.String("referral_id", d.Referral.ID),
			zap.String("referrer_id", d.Referral.ReferrerID),
			zap.String("referred_user_id", d.Referral.ReferredUserID))
		return nil
	})

	m.Subscribe(EventBonusIssued, func(ctx context.Context, e Event) error {
		d, ok := e.Data.(BonusIssuedData)
		if !ok {
			return nil
		}
		log.Info("bonus issued",
			zap.String("event", string(e.Type)),
			zap.String("bonus_id", d.Bonus.ID),
			zap.String("user_id", d.Bonus.UserID),
			zap.String("type", d.Bonus.Type),
			zap.Int("value", d.Bonus.Value))
		return nil
	})
}
