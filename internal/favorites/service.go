package favorites

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"mboaimmo/server/internal/models"
	"mboaimmo/server/internal/optimistic"
	"mboaimmo/server/internal/store"
)

// Observer is notified with the new favorite set of a user every time the
// cached set changes, including the rollback notification after a failed
// persist.
type Observer func(userID string, propertyIDs []string)

// Service caches one favorite set per user and applies toggles
// optimistically: the cached set flips before the store call, and flips
// back if the call fails.
type Service struct {
	store  store.Store
	logger *logrus.Logger

	mu        sync.Mutex
	sets      map[string]map[string]bool
	observers []Observer
}

func NewService(st store.Store, log *logrus.Logger) *Service {
	return &Service{
		store:  st,
		logger: log,
		sets:   make(map[string]map[string]bool),
	}
}

// Subscribe registers an observer for favorite-set changes.
func (s *Service) Subscribe(obs Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, obs)
	s.mu.Unlock()
}

// FetchForUser loads the user's favorites from the store into the cache
// and returns the property ids.
func (s *Service) FetchForUser(ctx context.Context, userID string) ([]string, error) {
	favs, err := s.store.ListFavorites(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to fetch favorites")
		return nil, err
	}

	set := make(map[string]bool, len(favs))
	for _, f := range favs {
		set[f.PropertyID] = true
	}

	s.mu.Lock()
	s.sets[userID] = set
	s.mu.Unlock()

	return setToIDs(set), nil
}

// IsFavorite answers from the cached set only.
func (s *Service) IsFavorite(userID, propertyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[userID][propertyID]
}

// ListForUser returns the cached property ids for the user.
func (s *Service) ListForUser(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setToIDs(s.sets[userID])
}

// Toggle flips membership of propertyID in the user's favorite set. The
// cached set changes and observers fire before the store call; when the
// call fails the set reverts, observers fire again with the old set, and
// the error propagates so the caller can show a notice. The returned bool
// reports whether the toggle was an add.
//
// The lock is not held across the persist or the observer callbacks, so
// observers may call back into this service.
func (s *Service) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	s.mu.Lock()
	cur := s.sets[userID]
	next := make(map[string]bool, len(cur)+1)
	for id := range cur {
		next[id] = true
	}

	adding := !next[propertyID]
	if adding {
		next[propertyID] = true
	} else {
		delete(next, propertyID)
	}

	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	state := cur
	err := optimistic.Do(&state, next,
		func(set map[string]bool) {
			s.mu.Lock()
			s.sets[userID] = set
			s.mu.Unlock()
			ids := setToIDs(set)
			for _, obs := range observers {
				obs(userID, ids)
			}
		},
		func() error {
			if adding {
				return s.store.AddFavorite(ctx, &models.Favorite{
					UserID:     userID,
					PropertyID: propertyID,
				})
			}
			return s.store.RemoveFavorite(ctx, userID, propertyID)
		},
	)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":     userID,
			"property_id": propertyID,
		}).Error("Favorite toggle failed, cache rolled back")
		return adding, err
	}

	return adding, nil
}

func setToIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
