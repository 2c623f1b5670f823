package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "fjelldrift/internal/config"
	intdb "fjelldrift/internal/db"
	"fjelldrift/internal/domain/models"
)

type FeedbackRepo struct {
	DB *sql.DB
}

func (r FeedbackRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const feedbackColumns = `id, COALESCE(type,''), COALESCE(datetime,''), COALESCE(comment,''),
	COALESCE(innsender,''), COALESCE(status,''),
	COALESCE(status_changed_by,''), COALESCE(status_changed_at,''),
	COALESCE(hidden,0), COALESCE(is_alert,0), COALESCE(display_on_weather,0),
	COALESCE(expiry_date,''), COALESCE(target_group,'')`

func scanFeedback(row interface{ Scan(...any) error }) (models.Feedback, error) {
	var f models.Feedback
	var hidden, isAlert, onWeather int
	err := row.Scan(
		&f.ID, &f.Type, &f.Datetime, &f.Comment,
		&f.Submitter, &f.Status,
		&f.StatusChangedBy, &f.StatusChangedAt,
		&hidden, &isAlert, &onWeather,
		&f.ExpiryDate, &f.TargetGroup,
	)
	f.Hidden = hidden != 0
	f.IsAlert = isAlert != 0
	f.DisplayOnWeather = onWeather != 0
	return f, err
}

// Insert stores a feedback entry (or alert when f.IsAlert is set) and
// returns its id.
func (r FeedbackRepo) Insert(f models.Feedback) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO feedback
			(type, datetime, comment, innsender, status, status_changed_at,
			 hidden, is_alert, display_on_weather, expiry_date, target_group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(f.Type),
		f.Datetime,
		f.Comment,
		strings.TrimSpace(f.Submitter),
		f.Status,
		f.StatusChangedAt,
		boolToInt(f.Hidden),
		boolToInt(f.IsAlert),
		boolToInt(f.DisplayOnWeather),
		intdb.NullIfEmpty(strings.TrimSpace(f.ExpiryDate)),
		intdb.NullIfEmpty(strings.TrimSpace(f.TargetGroup)),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FeedbackQuery narrows List results.
type FeedbackQuery struct {
	Start         string
	End           string
	IncludeHidden bool
	Cabin         string
	Limit         int
	Offset        int
}

// List returns feedback entries (alerts excluded), newest first.
func (r FeedbackRepo) List(q FeedbackQuery) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE COALESCE(is_alert,0) = 0`
	args := []any{}

	if q.Start != "" && q.End != "" {
		query += ` AND datetime BETWEEN ? AND ?`
		args = append(args, q.Start, q.End)
	}
	if !q.IncludeHidden {
		query += ` AND COALESCE(hidden,0) = 0`
	}
	if q.Cabin != "" {
		query += ` AND innsender = ?`
		args = append(args, strings.TrimSpace(q.Cabin))
	}

	query += ` ORDER BY datetime DESC`
	if q.Limit <= 0 {
		q.Limit = 100
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFeedback(rows)
}

func collectFeedback(rows *sql.Rows) ([]models.Feedback, error) {
	out := []models.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r FeedbackRepo) GetByID(id int64) (models.Feedback, error) {
	if id <= 0 {
		return models.Feedback{}, fmt.Errorf("invalid id")
	}
	return scanFeedback(r.db().QueryRow(
		`SELECT `+feedbackColumns+` FROM feedback WHERE id = ? LIMIT 1`, id,
	))
}

func (r FeedbackRepo) UpdateStatus(id int64, status, changedBy, changedAt string) error {
	res, err := r.db().Exec(`
		UPDATE feedback
		SET status = ?, status_changed_by = ?, status_changed_at = ?
		WHERE id = ?`,
		status, strings.TrimSpace(changedBy), changedAt, id,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r FeedbackRepo) SetHidden(id int64, hidden bool) error {
	res, err := r.db().Exec(`UPDATE feedback SET hidden = ? WHERE id = ?`, boolToInt(hidden), id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r FeedbackRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// CountsBy groups non-alert feedback volume within a window by the
// given column (type or status).
func (r FeedbackRepo) CountsBy(column, start, end string) (map[string]int, error) {
	if column != "type" && column != "status" {
		return nil, fmt.Errorf("unsupported grouping column %q", column)
	}
	rows, err := r.db().Query(`
		SELECT COALESCE(`+column+`, ''), COUNT(*)
		FROM feedback
		WHERE COALESCE(is_alert,0) = 0 AND datetime BETWEEN ? AND ?
		GROUP BY COALESCE(`+column+`, '')`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}

// DailyCounts returns per-day feedback volume within a window.
func (r FeedbackRepo) DailyCounts(start, end string) ([]models.DailyCount, error) {
	rows, err := r.db().Query(`
		SELECT date(datetime), COUNT(*)
		FROM feedback
		WHERE COALESCE(is_alert,0) = 0 AND datetime BETWEEN ? AND ?
		GROUP BY date(datetime)
		ORDER BY date(datetime)`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.DailyCount{}
	for rows.Next() {
		var d models.DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAlerts returns admin alerts with status Aktiv. onlyToday limits
// to alerts created today; expired alerts are skipped unless asked for.
func (r FeedbackRepo) ListAlerts(onlyToday, includeExpired bool, today string) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback
		WHERE COALESCE(is_alert,0) = 1 AND status = ?`
	args := []any{models.AlertActive}

	if onlyToday {
		query += ` AND date(datetime) = ?`
		args = append(args, today)
	}
	if !includeExpired {
		query += ` AND (expiry_date IS NULL OR expiry_date = '' OR date(expiry_date) >= ?)`
		args = append(args, today)
	}
	query += ` ORDER BY datetime DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFeedback(rows)
}

// UpdateAlert rewrites the editable alert fields.
func (r FeedbackRepo) UpdateAlert(id int64, alertType, message, expiryDate, targetGroup, status string) error {
	res, err := r.db().Exec(`
		UPDATE feedback
		SET type = ?, comment = ?, expiry_date = ?, target_group = ?, status = ?
		WHERE id = ? AND COALESCE(is_alert,0) = 1`,
		strings.TrimSpace(alertType),
		message,
		intdb.NullIfEmpty(strings.TrimSpace(expiryDate)),
		intdb.NullIfEmpty(strings.TrimSpace(targetGroup)),
		status,
		id,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
