package repositories

import (
	"context"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// ActivityRepository records the best-effort audit trail. Failures here must
// never abort the operation being recorded.
type ActivityRepository interface {
	RecordActivity(ctx context.Context, activity domain.Activity) error
	ListRecentActivities(ctx context.Context, limit int) ([]domain.Activity, error)
}
