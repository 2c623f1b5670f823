package repositories

import (
	"database/sql"
	"strings"

	intconfig "fjelldrift/internal/config"
	"fjelldrift/internal/domain/models"
)

type LoginHistoryRepo struct {
	DB *sql.DB
}

func (r LoginHistoryRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert records one login attempt.
func (r LoginHistoryRepo) Insert(userID, loginTime string, success bool) error {
	_, err := r.db().Exec(`
		INSERT INTO login_history (user_id, login_time, success)
		VALUES (?, ?, ?)`,
		strings.TrimSpace(userID), loginTime, boolToInt(success),
	)
	return err
}

// ListBetween returns attempts in [start, end], newest first.
func (r LoginHistoryRepo) ListBetween(start, end string) ([]models.LoginEntry, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(user_id,''), COALESCE(login_time,''), COALESCE(success,0)
		FROM login_history
		WHERE login_time BETWEEN ? AND ?
		ORDER BY login_time DESC`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LoginEntry{}
	for rows.Next() {
		var e models.LoginEntry
		var success int
		if err := rows.Scan(&e.ID, &e.UserID, &e.LoginTime, &success); err != nil {
			return nil, err
		}
		e.Success = success != 0
		out = append(out, e)
	}
	return out, rows.Err()
}
