package location

import (
	"context"
	"time"

	"courier-tracking/internal/domain"
)

// positionRepository defines storage operations required by the tracker.
type positionRepository interface {
	Update(ctx context.Context, rep domain.PositionReport, now time.Time) (*domain.CourierPosition, error)
	Insert(ctx context.Context, rep domain.PositionReport, now time.Time) (*domain.CourierPosition, error)
	Latest(ctx context.Context, courierID int64) (*domain.CourierPosition, error)
	LatestAll(ctx context.Context) ([]domain.CourierPosition, error)
	ListJoined(ctx context.Context) ([]domain.CourierPosition, error)
}

// broadcaster is the observer fan-out the tracker pushes to after a commit.
type broadcaster interface {
	Publish(event string, payload any)
}

// EventPublisher relays committed position reports to an external stream.
// Delivery is best-effort; a failure never fails the report.
type EventPublisher interface {
	PublishPosition(ctx context.Context, p domain.CourierPosition) error
}
