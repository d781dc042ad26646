package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"mboaimmo/server/internal/models"
	"mboaimmo/server/internal/store"
)

// ErrRealtimeUnavailable is returned by Listen on the fallback path, where
// no push channel exists. Callers fall back to plain fetches.
var ErrRealtimeUnavailable = errors.New("realtime notifications unavailable")

// Service reads and writes notification rows and, when a redis client is
// present (real backend path only), pushes new rows over a per-user
// pub/sub channel so they arrive without polling.
type Service struct {
	store  store.Store
	redis  *redis.Client
	logger *logrus.Logger
}

// NewService builds the service. rdb may be nil; realtime delivery is then
// disabled, which is the accepted asymmetry of the fallback path.
func NewService(st store.Store, rdb *redis.Client, log *logrus.Logger) *Service {
	return &Service{store: st, redis: rdb, logger: log}
}

func channelFor(userID string) string {
	return "notifications:" + userID
}

func (s *Service) FetchForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifs, err := s.store.ListNotifications(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to fetch notifications")
		return nil, err
	}
	return notifs, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkNotificationRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

// Create persists a notification and publishes it to the owner's channel.
// A publish failure is logged, not surfaced: the row is already durable
// and will appear on the next fetch.
func (s *Service) Create(ctx context.Context, userID, notifType, title, message string) (*models.Notification, error) {
	if userID == "" || title == "" {
		return nil, fmt.Errorf("user id and title are required")
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.logger.WithError(err).Error("Failed to create notification")
		return nil, err
	}

	if s.redis != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			err = s.redis.Publish(ctx, channelFor(userID), payload).Err()
		}
		if err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to publish notification")
		}
	}

	return n, nil
}

// Listen subscribes to the user's channel and invokes handler for every
// pushed notification until ctx is cancelled.
func (s *Service) Listen(ctx context.Context, userID string, handler func(models.Notification)) error {
	if s.redis == nil {
		return ErrRealtimeUnavailable
	}

	sub := s.redis.Subscribe(ctx, channelFor(userID))
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var n models.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					s.logger.WithError(err).Warn("Dropped malformed notification payload")
					continue
				}
				handler(n)
			}
		}
	}()

	return nil
}
