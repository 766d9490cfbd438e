// README: Ride history store backed by PostgreSQL.
package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// InsertOrReplace upserts a record by id. A duplicate archive of the same
// ride overwrites the existing row instead of creating a second one.
func (s *Store) InsertOrReplace(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO ride_history (
            id, from_address, to_address,
            from_lat, from_lng, to_lat, to_lng,
            tariff, payment_method, price, distance_km, duration_min,
            status, rating, driver_name, driver_phone, car_model, car_plate,
            created_at
        ) VALUES (
            $1, $2, $3,
            $4, $5, $6, $7,
            $8, $9, $10, $11, $12,
            $13, $14, $15, $16, $17, $18,
            $19
        )
        ON CONFLICT (id) DO UPDATE SET
            from_address = EXCLUDED.from_address,
            to_address = EXCLUDED.to_address,
            from_lat = EXCLUDED.from_lat,
            from_lng = EXCLUDED.from_lng,
            to_lat = EXCLUDED.to_lat,
            to_lng = EXCLUDED.to_lng,
            tariff = EXCLUDED.tariff,
            payment_method = EXCLUDED.payment_method,
            price = EXCLUDED.price,
            distance_km = EXCLUDED.distance_km,
            duration_min = EXCLUDED.duration_min,
            status = EXCLUDED.status,
            rating = EXCLUDED.rating,
            driver_name = EXCLUDED.driver_name,
            driver_phone = EXCLUDED.driver_phone,
            car_model = EXCLUDED.car_model,
            car_plate = EXCLUDED.car_plate,
            created_at = EXCLUDED.created_at`,
		r.ID, r.FromAddress, r.ToAddress,
		r.FromLat, r.FromLng, r.ToLat, r.ToLng,
		r.Tariff, r.PaymentMethod, r.Price, r.DistanceKm, r.DurationMin,
		r.Status, r.Rating, r.DriverName, r.DriverPhone, r.CarModel, r.CarPlate,
		r.CreatedAt,
	)
	return err
}

// List returns all records, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, from_address, to_address,
               from_lat, from_lng, to_lat, to_lng,
               tariff, payment_method, price, distance_km, duration_min,
               status, rating, driver_name, driver_phone, car_model, car_plate,
               created_at
        FROM ride_history
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.FromAddress, &r.ToAddress,
			&r.FromLat, &r.FromLng, &r.ToLat, &r.ToLng,
			&r.Tariff, &r.PaymentMethod, &r.Price, &r.DistanceKm, &r.DurationMin,
			&r.Status, &r.Rating, &r.DriverName, &r.DriverPhone, &r.CarModel, &r.CarPlate,
			&r.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM ride_history WHERE id = $1`, id)
	return err
}
