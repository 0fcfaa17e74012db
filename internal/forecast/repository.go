package forecast

import (
	"database/sql"

	"github.com/nelson960/Trend-Analysis/internal/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Save replaces stored forecasts for the brands present in points.
func (r *Repository) Save(points []Point) error {
	seen := make(map[string]struct{})
	for _, p := range points {
		if _, ok := seen[p.Brand]; !ok {
			seen[p.Brand] = struct{}{}
			if _, err := r.db.Exec(`DELETE FROM forecasts WHERE brand = ?`, p.Brand); err != nil {
				return err
			}
		}

		var observed any
		if p.Observed != nil {
			observed = *p.Observed
		}
		if _, err := r.db.Exec(
			`INSERT INTO forecasts (brand, date, predicted, observed, type) VALUES (?, ?, ?, ?, ?)`,
			p.Brand, p.Date, p.Predicted, observed, p.Type,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) List() ([]Point, error) {
	rows, err := r.db.Query(`SELECT brand, date, predicted, observed, type FROM forecasts ORDER BY brand, date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		var observed sql.NullFloat64
		if err := rows.Scan(&p.Brand, &p.Date, &p.Predicted, &observed, &p.Type); err != nil {
			return nil, err
		}
		if observed.Valid {
			p.Observed = &observed.Float64
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
