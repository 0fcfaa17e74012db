package trend

import (
	"github.com/nelson960/Trend-Analysis/internal/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Save replaces the stored series for the brands present in points.
func (r *Repository) Save(points []Point) error {
	seen := make(map[string]struct{})
	for _, p := range points {
		if _, ok := seen[p.Brand]; !ok {
			seen[p.Brand] = struct{}{}
			if _, err := r.db.Exec(`DELETE FROM trend_points WHERE brand = ?`, p.Brand); err != nil {
				return err
			}
		}
		if _, err := r.db.Exec(
			`INSERT INTO trend_points (brand, date, value) VALUES (?, ?, ?)`,
			p.Brand, p.Date, p.Value,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) List() ([]Point, error) {
	rows, err := r.db.Query(`SELECT brand, date, value FROM trend_points ORDER BY brand, date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Brand, &p.Date, &p.Value); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *Repository) ListBrand(brand string) ([]Point, error) {
	rows, err := r.db.Query(`SELECT brand, date, value FROM trend_points WHERE brand = ? ORDER BY date`, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Brand, &p.Date, &p.Value); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
