package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "fjelldrift/internal/config"
	intdb "fjelldrift/internal/db"
	"fjelldrift/internal/domain/models"
)

type SandingRepo struct {
	DB *sql.DB
}

func (r SandingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const sandingColumns = `id, bruker, bestillings_dato, onske_dato,
	COALESCE(kommentar, ''), COALESCE(status, 'Pending'),
	COALESCE(utfort_dato, ''), COALESCE(utfort_av, ''),
	COALESCE(fakturert, 0),
	COALESCE(created_at, ''), COALESCE(updated_at, '')`

func scanSandingOrder(row interface{ Scan(...any) error }) (models.SandingOrder, error) {
	var o models.SandingOrder
	var invoiced int
	err := row.Scan(
		&o.ID,
		&o.Cabin,
		&o.OrderedAt,
		&o.WishDate,
		&o.Comment,
		&o.Status,
		&o.CompletedAt,
		&o.CompletedBy,
		&invoiced,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	o.Invoiced = invoiced != 0
	return o, err
}

// Insert stores a new sanding order with Pending status.
func (r SandingRepo) Insert(cabin, orderedAt, wishDate, comment string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO stroing_bestillinger (bruker, bestillings_dato, onske_dato, kommentar, status)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(cabin),
		orderedAt,
		strings.TrimSpace(wishDate),
		intdb.NullIfEmpty(strings.TrimSpace(comment)),
		models.SandingPending,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns orders, soonest wish date first.
func (r SandingRepo) List() ([]models.SandingOrder, error) {
	rows, err := r.db().Query(`SELECT ` + sandingColumns + ` FROM stroing_bestillinger ORDER BY onske_dato, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSandingOrders(rows)
}

func (r SandingRepo) ListByCabin(cabin string) ([]models.SandingOrder, error) {
	rows, err := r.db().Query(`
		SELECT `+sandingColumns+`
		FROM stroing_bestillinger
		WHERE bruker = ?
		ORDER BY onske_dato DESC`,
		strings.TrimSpace(cabin),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSandingOrders(rows)
}

func collectSandingOrders(rows *sql.Rows) ([]models.SandingOrder, error) {
	out := []models.SandingOrder{}
	for rows.Next() {
		o, err := scanSandingOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r SandingRepo) GetByID(id int64) (models.SandingOrder, error) {
	if id <= 0 {
		return models.SandingOrder{}, fmt.Errorf("invalid id")
	}
	return scanSandingOrder(r.db().QueryRow(
		`SELECT `+sandingColumns+` FROM stroing_bestillinger WHERE id = ? LIMIT 1`, id,
	))
}

// MarkCompleted stamps the order as done and appends a status log row
// in one transaction.
func (r SandingRepo) MarkCompleted(id int64, completedBy, completedAt string) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRow(`SELECT COALESCE(status, 'Pending') FROM stroing_bestillinger WHERE id = ?`, id).Scan(&current)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE stroing_bestillinger
		SET status = ?, utfort_dato = ?, utfort_av = ?, updated_at = ?
		WHERE id = ?`,
		models.SandingCompleted, completedAt, strings.TrimSpace(completedBy), completedAt, id,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO stroing_status_log (bestilling_id, old_status, new_status, changed_by, changed_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, current, models.SandingCompleted, strings.TrimSpace(completedBy), completedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r SandingRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM stroing_bestillinger WHERE id = ?`, id)
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

func (r SandingRepo) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM stroing_bestillinger`).Scan(&n)
	return n, err
}

// StatusLog returns the audit trail for one order, oldest first.
func (r SandingRepo) StatusLog(orderID int64) ([]models.SandingStatusChange, error) {
	rows, err := r.db().Query(`
		SELECT id, bestilling_id, COALESCE(old_status,''), COALESCE(new_status,''),
		       COALESCE(changed_by,''), COALESCE(changed_at,'')
		FROM stroing_status_log
		WHERE bestilling_id = ?
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SandingStatusChange{}
	for rows.Next() {
		var c models.SandingStatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.OldStatus, &c.NewStatus, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
