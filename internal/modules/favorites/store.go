// README: Favorite address store backed by PostgreSQL.
package favorites

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

func (s *Store) InsertOrReplace(ctx context.Context, a Address) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO favorite_addresses (id, label, address, lat, lng, icon)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            label = EXCLUDED.label,
            address = EXCLUDED.address,
            lat = EXCLUDED.lat,
            lng = EXCLUDED.lng,
            icon = EXCLUDED.icon`,
		a.ID, a.Label, a.Address, a.Lat, a.Lng, a.Icon,
	)
	return err
}

// List returns all favorites ordered by label for display.
func (s *Store) List(ctx context.Context) ([]Address, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, label, address, lat, lng, icon
        FROM favorite_addresses
        ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.Label, &a.Address, &a.Lat, &a.Lng, &a.Icon); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM favorite_addresses WHERE id = $1`, id)
	return err
}
