package properties

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/sirupsen/logrus"

	"mboaimmo/server/internal/models"
	"mboaimmo/server/internal/store"
)

// Service owns the cached property collection. Reads filter the cache in
// memory; every mutation goes to the store and then refetches the whole
// collection, so the cache is never merged partially.
type Service struct {
	store  store.Store
	logger *logrus.Logger

	mu      sync.RWMutex
	cache   []models.Property
	lastErr error
}

func NewService(st store.Store, log *logrus.Logger) *Service {
	return &Service{store: st, logger: log}
}

// FetchAll refreshes the cache from the store and returns the collection.
func (s *Service) FetchAll(ctx context.Context) ([]models.Property, error) {
	props, err := s.store.ListProperties(ctx)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.cache = props
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch properties")
		return nil, err
	}
	return s.All(), nil
}

// All returns a copy of the cached collection without touching the store.
func (s *Service) All() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, len(s.cache))
	copy(out, s.cache)
	return out
}

// LastErr reports the error state of the most recent store round-trip.
func (s *Service) LastErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Property, error) {
	s.mu.RLock()
	for i := range s.cache {
		if s.cache[i].ID == id {
			p := s.cache[i]
			s.mu.RUnlock()
			return &p, nil
		}
	}
	s.mu.RUnlock()

	return s.store.GetProperty(ctx, id)
}

// FilterByCriteria applies the compound filter to the cached collection.
func (s *Service) FilterByCriteria(c Criteria) []models.Property {
	return Filter(s.All(), c)
}

// FilterByType narrows the cached collection to a single property type.
func (s *Service) FilterByType(propertyType string) []models.Property {
	return Filter(s.All(), Criteria{Type: propertyType})
}

// SearchCached runs the free-text search over the cached collection.
func (s *Service) SearchCached(query string) []models.Property {
	return Search(s.All(), query)
}

// Nearby returns cached properties with coordinates within radiusMeters of
// the given point, nearest first.
func (s *Service) Nearby(lat, lon, radiusMeters float64) []models.Property {
	center := orb.Point{lon, lat}

	type scored struct {
		prop models.Property
		dist float64
	}
	var hits []scored
	for _, p := range s.All() {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		d := geo.Distance(center, orb.Point{*p.Longitude, *p.Latitude})
		if d <= radiusMeters {
			hits = append(hits, scored{prop: p, dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]models.Property, len(hits))
	for i, h := range hits {
		out[i] = h.prop
	}
	return out
}

// Create validates and persists a new listing, then refetches the
// collection.
func (s *Service) Create(ctx context.Context, p *models.Property) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.store.CreateProperty(ctx, p); err != nil {
		s.setErr(err)
		return err
	}
	_, err := s.FetchAll(ctx)
	return err
}

// Update persists changes to an existing listing, then refetches.
func (s *Service) Update(ctx context.Context, p *models.Property) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.store.UpdateProperty(ctx, p); err != nil {
		s.setErr(err)
		return err
	}
	_, err := s.FetchAll(ctx)
	return err
}

// Delete removes a listing, then refetches.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProperty(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	_, err := s.FetchAll(ctx)
	return err
}

// Stats summarizes the cached collection for the admin dashboard.
func (s *Service) Stats() models.PropertyStats {
	props := s.All()

	stats := models.PropertyStats{
		TotalProperties: len(props),
		CountByType:     make(map[string]int),
	}
	var sum int64
	for _, p := range props {
		stats.CountByType[p.PropertyType]++
		sum += p.Price
		switch p.Status {
		case models.StatusDisponible:
			stats.TotalDisponible++
		case models.StatusReserve:
			stats.TotalReserve++
		case models.StatusVendu:
			stats.TotalVendu++
		}
	}
	if len(props) > 0 {
		stats.AveragePrice = float64(sum) / float64(len(props))
	}
	return stats
}

func (s *Service) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.logger.WithError(err).Error("Property mutation failed")
}

func validate(p *models.Property) error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !models.ValidType(p.PropertyType) {
		return fmt.Errorf("unknown property type %q", p.PropertyType)
	}
	if p.Status != "" && !models.ValidStatus(p.Status) {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
