// README: Driver marker cache backed by Redis GEO and a detail hash.
package drivers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"glazovcab/internal/types"
)

const (
	driverGeoKey  = "drivers:geo"
	driverInfoKey = "drivers:info"
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// ReplaceAll swaps the cached driver set for the latest remote snapshot.
// Drivers missing from the snapshot are evicted.
func (s *Store) ReplaceAll(ctx context.Context, ds []Driver) error {
	current, err := s.redis.HKeys(ctx, driverInfoKey).Result()
	if err != nil {
		return fmt.Errorf("listing cached drivers: %w", err)
	}
	keep := make(map[string]bool, len(ds))

	pipe := s.redis.Pipeline()
	for _, d := range ds {
		keep[string(d.ID)] = true
		raw, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encoding driver %s: %w", string(d.ID), err)
		}
		pipe.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
			Name:      string(d.ID),
			Longitude: d.Lng,
			Latitude:  d.Lat,
		})
		pipe.HSet(ctx, driverInfoKey, string(d.ID), raw)
	}
	for _, id := range current {
		if !keep[id] {
			pipe.ZRem(ctx, driverGeoKey, id)
			pipe.HDel(ctx, driverInfoKey, id)
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Nearby returns cached drivers within radiusKm of p, closest first.
func (s *Store) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]Marker, error) {
	results, err := s.redis.GeoSearchLocation(ctx, driverGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  p.Lng,
			Latitude:   p.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, err
	}

	markers := make([]Marker, 0, len(results))
	for _, r := range results {
		raw, err := s.redis.HGet(ctx, driverInfoKey, r.Name).Result()
		if err == redis.Nil {
			continue // evicted between the search and the lookup
		}
		if err != nil {
			return nil, err
		}
		var d Driver
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, fmt.Errorf("decoding driver %s: %w", r.Name, err)
		}
		markers = append(markers, Marker{Driver: d, DistanceKm: r.Dist})
	}
	return markers, nil
}
