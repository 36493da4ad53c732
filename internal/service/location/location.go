package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/broadcast"
	"courier-tracking/internal/domain"
	"courier-tracking/internal/logx"
)

// Service owns the upsert-or-insert write path for courier positions and the
// "latest position per courier" read semantics.
type Service struct {
	repo             positionRepository
	hub              broadcaster
	events           EventPublisher
	locks            *keyedLock
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures the location tracker.
func NewService(repo positionRepository, hub broadcaster, events EventPublisher, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		hub:              hub,
		events:           events,
		locks:            newKeyedLock(),
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateReport(rep *domain.PositionReport) error {
	if rep.CourierID <= 0 {
		return apperr.Invalid
	}
	if !domain.ValidLatLng(rep.Lat, rep.Lng) {
		return apperr.Invalid
	}
	if rep.Status == "" {
		rep.Status = domain.PositionInTransit
	}
	if !rep.Status.Valid() {
		return apperr.Invalid
	}
	return nil
}

// Report commits a position report and pushes it to observers. The courier
// ends up with exactly one live row whether or not it has reported before.
func (s *Service) Report(ctx context.Context, rep domain.PositionReport) (*domain.CourierPosition, error) {
	if err := validateReport(&rep); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.upsert(ctx, rep)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("position committed",
		logx.Int64("courier_id", p.CourierID),
		logx.Float64("lat", p.Lat),
		logx.Float64("lng", p.Lng),
	)

	s.hub.Publish(broadcast.EventNewLocation, positionEvent{
		ID:     p.CourierID,
		Lat:    p.Lat,
		Lng:    p.Lng,
		Status: p.Status,
	})
	if snapshot, err := s.repo.ListJoined(ctx); err != nil {
		s.logger.Error("post-report snapshot query failed",
			logx.Int64("courier_id", rep.CourierID), logx.Any("err", err))
	} else {
		s.hub.Publish(broadcast.EventLocationsUpdate, snapshot)
	}

	if s.events != nil {
		if err := s.events.PublishPosition(ctx, *p); err != nil {
			s.logger.Error("position event publish failed",
				logx.Int64("courier_id", p.CourierID), logx.Any("err", err))
		}
	}
	return p, nil
}

// upsert serializes writers per courier, then runs update-then-insert.
// The store's unique constraint stays as backstop: losing a first-report race
// to a writer outside this process surfaces as Conflict and is retried as an
// update.
func (s *Service) upsert(ctx context.Context, rep domain.PositionReport) (*domain.CourierPosition, error) {
	unlock := s.locks.lock(rep.CourierID)
	defer unlock()

	p, err := s.repo.Update(ctx, rep, s.now())
	if err != nil || p != nil {
		return p, err
	}

	p, err = s.repo.Insert(ctx, rep, s.now())
	if errors.Is(err, apperr.Conflict) {
		p, err = s.repo.Update(ctx, rep, s.now())
		if err == nil && p == nil {
			return nil, fmt.Errorf("courier %d: row vanished between insert conflict and update", rep.CourierID)
		}
	}
	return p, err
}

// Latest returns the courier's single most recent row.
func (s *Service) Latest(ctx context.Context, courierID int64) (*domain.CourierPosition, error) {
	if courierID <= 0 {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.Latest(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound
	}
	return p, nil
}

// LatestAll returns one row per courier, the most recently updated for each.
func (s *Service) LatestAll(ctx context.Context) ([]domain.CourierPosition, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.LatestAll(ctx)
}

// ListJoined returns all live positions joined with courier names.
func (s *Service) ListJoined(ctx context.Context) ([]domain.CourierPosition, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListJoined(ctx)
}

// positionEvent is the wire shape of a single-position push.
type positionEvent struct {
	ID     int64                 `json:"id"`
	Lat    float64               `json:"lat"`
	Lng    float64               `json:"lng"`
	Status domain.PositionStatus `json:"status"`
}
