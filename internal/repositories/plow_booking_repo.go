package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "fjelldrift/internal/config"
	intdb "fjelldrift/internal/db"
	"fjelldrift/internal/domain/models"
)

type PlowBookingRepo struct {
	DB *sql.DB
}

func (r PlowBookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const plowBookingColumns = `id, bruker,
	COALESCE(ankomst_dato, ''), COALESCE(ankomst_tid, ''),
	COALESCE(avreise_dato, ''), COALESCE(avreise_tid, ''),
	COALESCE(abonnement_type, '')`

func scanPlowBooking(row interface{ Scan(...any) error }) (models.PlowBooking, error) {
	var b models.PlowBooking
	err := row.Scan(
		&b.ID,
		&b.Cabin,
		&b.ArrivalDate,
		&b.ArrivalTime,
		&b.DepartureDate,
		&b.DepartureTime,
		&b.SubscriptionType,
	)
	return b, err
}

// Insert stores a new plow booking and returns its id.
func (r PlowBookingRepo) Insert(b models.PlowBooking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO tunbroyting_bestillinger
			(bruker, ankomst_dato, ankomst_tid, avreise_dato, avreise_tid, abonnement_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(b.Cabin),
		strings.TrimSpace(b.ArrivalDate),
		intdb.NullIfEmpty(strings.TrimSpace(b.ArrivalTime)),
		intdb.NullIfEmpty(strings.TrimSpace(b.DepartureDate)),
		intdb.NullIfEmpty(strings.TrimSpace(b.DepartureTime)),
		strings.TrimSpace(b.SubscriptionType),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns every booking in insertion order.
func (r PlowBookingRepo) List() ([]models.PlowBooking, error) {
	rows, err := r.db().Query(`SELECT ` + plowBookingColumns + ` FROM tunbroyting_bestillinger ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PlowBooking{}
	for rows.Next() {
		b, err := scanPlowBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByCabin returns a cabin's bookings, newest arrival first.
func (r PlowBookingRepo) ListByCabin(cabin string) ([]models.PlowBooking, error) {
	rows, err := r.db().Query(`
		SELECT `+plowBookingColumns+`
		FROM tunbroyting_bestillinger
		WHERE bruker = ?
		ORDER BY ankomst_dato DESC, ankomst_tid DESC`,
		strings.TrimSpace(cabin),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PlowBooking{}
	for rows.Next() {
		b, err := scanPlowBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r PlowBookingRepo) GetByID(id int64) (models.PlowBooking, error) {
	if id <= 0 {
		return models.PlowBooking{}, fmt.Errorf("invalid id")
	}
	b, err := scanPlowBooking(r.db().QueryRow(
		`SELECT `+plowBookingColumns+` FROM tunbroyting_bestillinger WHERE id = ? LIMIT 1`, id,
	))
	if err != nil {
		return models.PlowBooking{}, err
	}
	return b, nil
}

// Update performs PATCH-style updates based on field presence.
func (r PlowBookingRepo) Update(id int64, upd models.PlowBookingUpdate) error {
	if id <= 0 {
		return fmt.Errorf("invalid id")
	}
	sets := []string{}
	args := []any{}

	set := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*v)))
		}
	}
	set("ankomst_dato", upd.ArrivalDate)
	set("ankomst_tid", upd.ArrivalTime)
	set("avreise_dato", upd.DepartureDate)
	set("avreise_tid", upd.DepartureTime)
	set("abonnement_type", upd.SubscriptionType)

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db().Exec(
		`UPDATE tunbroyting_bestillinger SET `+strings.Join(sets, ",")+` WHERE id=?`, args...,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r PlowBookingRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM tunbroyting_bestillinger WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r PlowBookingRepo) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM tunbroyting_bestillinger`).Scan(&n)
	return n, err
}

// IsNoRows reports a missing-record error from any repo operation.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
