package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// activityRetention bounds how far back the activity tab can page.
const activityRetention = 180 * 24 * time.Hour

// ActivityPruneHandler deletes activity_logs rows past the retention window.
type ActivityPruneHandler struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
}

func (h ActivityPruneHandler) HandleActivityPrune(ctx context.Context, _ *asynq.Task) error {
	cutoff := time.Now().Add(-activityRetention)
	tag, err := h.Pool.Exec(ctx, `DELETE FROM activity_logs WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return err
	}
	if h.Logger != nil {
		h.Logger.Info("activity logs pruned",
			slog.Int64("deleted", tag.RowsAffected()),
			slog.Time("cutoff", cutoff),
		)
	}
	return nil
}
