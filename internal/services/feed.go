package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

// FeedEvent is one entry-processed notification pushed to live dashboards.
type FeedEvent struct {
	TripID                string    `json:"tripId"`
	PersonID              string    `json:"personId"`
	CbsaID                string    `json:"cbsaId"`
	RandomTestingReferral bool      `json:"randomTestingReferral"`
	QuarantineRequired    bool      `json:"quarantineRequired"`
	DateTime              time.Time `json:"dateTime"`
}

func FeedEventFromResponse(resp *types.TravelResponse) FeedEvent {
	return FeedEvent{
		TripID:                resp.TripID.String(),
		PersonID:              resp.PersonID.String(),
		CbsaID:                resp.CbsaID,
		RandomTestingReferral: resp.RandomTestingReferral,
		QuarantineRequired:    resp.QuarantineRequired,
		DateTime:              resp.DateTime,
	}
}

// TravelerFeed fans out ingestion events to streaming consumers. The redis
// implementation is cross-process; when REDIS_ADDR is unset the server falls
// back to the no-op feed and /feed/stream emits keep-alives only.
type TravelerFeed interface {
	Publish(ctx context.Context, event FeedEvent) error
	StartForwarder(ctx context.Context, onEvent func(e FeedEvent)) error
	Close() error
}

type redisFeed struct {
	log     *logger.Logger
	rdb     *redis.Client
	channel string
}

func NewRedisFeed(log *logger.Logger) (TravelerFeed, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_CHANNEL"))
	if ch == "" {
		ch = "traveller-feed"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisFeed{
		log:     log.With("service", "RedisFeed"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (f *redisFeed) Publish(ctx context.Context, event FeedEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return f.rdb.Publish(ctx, f.channel, raw).Err()
}

func (f *redisFeed) StartForwarder(ctx context.Context, onEvent func(e FeedEvent)) error {
	sub := f.rdb.Subscribe(ctx, f.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var event FeedEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					f.log.Warn("bad redis feed payload", "error", err)
					continue
				}
				onEvent(event)
			}
		}
	}()

	return nil
}

func (f *redisFeed) Close() error {
	if f == nil || f.rdb == nil {
		return nil
	}
	return f.rdb.Close()
}

// noopFeed keeps the server usable without redis.
type noopFeed struct{}

func NewNoopFeed() TravelerFeed { return noopFeed{} }

func (noopFeed) Publish(ctx context.Context, event FeedEvent) error { return nil }
func (noopFeed) StartForwarder(ctx context.Context, onEvent func(e FeedEvent)) error {
	return nil
}
func (noopFeed) Close() error { return nil }
