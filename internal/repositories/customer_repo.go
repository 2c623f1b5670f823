package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "fjelldrift/internal/config"
	intdb "fjelldrift/internal/db"
	"fjelldrift/internal/domain/models"
)

type CustomerRepo struct {
	DB *sql.DB
}

func (r CustomerRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const customerColumns = `Id, COALESCE(Name,''), COALESCE(Email,''), COALESCE(Phone,''),
	Latitude, Longitude, COALESCE(Subscription,''), COALESCE(Role,'user'),
	COALESCE(PasswordHash,'')`

func scanCustomer(row interface{ Scan(...any) error }) (models.Customer, error) {
	var c models.Customer
	var lat, lon sql.NullFloat64
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone,
		&lat, &lon, &c.Subscription, &c.Role,
		&c.PasswordHash,
	)
	if lat.Valid {
		c.Latitude = &lat.Float64
	}
	if lon.Valid {
		c.Longitude = &lon.Float64
	}
	return c, err
}

func (r CustomerRepo) GetByID(id string) (models.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Customer{}, fmt.Errorf("invalid id")
	}
	return scanCustomer(r.db().QueryRow(
		`SELECT `+customerColumns+` FROM customers WHERE Id = ? LIMIT 1`, id,
	))
}

// List returns all cabins ordered by numeric id where possible.
func (r CustomerRepo) List() ([]models.Customer, error) {
	rows, err := r.db().Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY CAST(Id AS INTEGER), Id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// WithCoordinates returns the cabins that can be placed on the map.
func (r CustomerRepo) WithCoordinates() ([]models.Customer, error) {
	rows, err := r.db().Query(`
		SELECT ` + customerColumns + `
		FROM customers
		WHERE Latitude IS NOT NULL AND Longitude IS NOT NULL
		ORDER BY CAST(Id AS INTEGER), Id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// AnnualSubscribers lists cabins whose subscription column marks an
// annual plowing subscription.
func (r CustomerRepo) AnnualSubscribers() ([]models.Customer, error) {
	rows, err := r.db().Query(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE Subscription = ?
		ORDER BY CAST(Id AS INTEGER), Id`,
		models.SubscriptionAnnual,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func collectCustomers(rows *sql.Rows) ([]models.Customer, error) {
	out := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update performs PATCH-style updates based on field presence.
func (r CustomerRepo) Update(id string, upd models.CustomerUpdate) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("invalid id")
	}
	sets := []string{}
	args := []any{}

	setStr := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*v)))
		}
	}
	setStr("Name", upd.Name)
	setStr("Email", upd.Email)
	setStr("Phone", upd.Phone)
	setStr("Subscription", upd.Subscription)
	setStr("Role", upd.Role)
	if upd.Latitude != nil {
		sets = append(sets, "Latitude=?")
		args = append(args, *upd.Latitude)
	}
	if upd.Longitude != nil {
		sets = append(sets, "Longitude=?")
		args = append(args, *upd.Longitude)
	}

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db().Exec(`UPDATE customers SET `+strings.Join(sets, ",")+` WHERE Id=?`, args...)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// SetPasswordHash stores a bcrypt hash for a cabin's login.
func (r CustomerRepo) SetPasswordHash(id, hash string) error {
	res, err := r.db().Exec(`UPDATE customers SET PasswordHash = ? WHERE Id = ?`, hash, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	return requireRows(res)
}
