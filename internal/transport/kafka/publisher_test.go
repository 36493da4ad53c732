package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"courier-tracking/internal/domain"
)

func TestNewPublisher_DisabledWithoutSettings(t *testing.T) {
	t.Parallel()

	p, err := NewPublisher(nil, "positions")
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = NewPublisher([]string{"localhost:9092"}, "  ")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestNilPublisher_IsNoOp(t *testing.T) {
	t.Parallel()

	var p *Publisher
	require.NoError(t, p.PublishPosition(context.Background(), domain.CourierPosition{CourierID: 7}))
	require.NoError(t, p.Close())
}

func TestPublishPosition(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(raw []byte) error {
		var dto PositionEventDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return err
		}
		require.Equal(t, int64(7), dto.CourierID)
		require.Equal(t, string(domain.PositionInTransit), dto.Status)
		return nil
	})

	p := &Publisher{producer: producer, topic: "positions"}
	err := p.PublishPosition(context.Background(), domain.CourierPosition{
		CourierID:  7,
		Lat:        40.4168,
		Lng:        -3.7038,
		Status:     domain.PositionInTransit,
		LastUpdate: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishPosition_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Publisher{producer: mocks.NewSyncProducer(t, nil), topic: "positions"}
	err := p.PublishPosition(ctx, domain.CourierPosition{CourierID: 7})
	require.ErrorIs(t, err, context.Canceled)
}
