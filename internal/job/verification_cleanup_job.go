package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"accountd/internal/service"
)

// VerificationCleanupJob reclaims registrations whose verification link was
// never clicked: once the link expires, the pending record and its
// unverified account are deleted, same as the click-path expiry outcome.
type VerificationCleanupJob struct {
	verifications *service.VerificationService
}

func NewVerificationCleanupJob(verifications *service.VerificationService) *VerificationCleanupJob {
	return &VerificationCleanupJob{verifications: verifications}
}

func (j *VerificationCleanupJob) Name() string {
	return "verification_cleanup"
}

func (j *VerificationCleanupJob) Run(ctx context.Context) error {
	purged, err := j.verifications.PurgeExpired(ctx)
	if purged > 0 {
		logutil.GetLogger(ctx).Info("purged expired registrations", zap.Int("count", purged))
	}
	return err
}
