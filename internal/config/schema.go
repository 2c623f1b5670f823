package config

import "database/sql"

// Table and column names follow the legacy Streamlit database so an
// existing community database file keeps working unchanged.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		Id TEXT PRIMARY KEY,
		Name TEXT,
		Email TEXT,
		Phone TEXT,
		Latitude REAL,
		Longitude REAL,
		Subscription TEXT,
		Role TEXT NOT NULL DEFAULT 'user',
		PasswordHash TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tunbroyting_bestillinger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bruker TEXT NOT NULL,
		ankomst_dato TEXT,
		ankomst_tid TEXT,
		avreise_dato TEXT,
		avreise_tid TEXT,
		abonnement_type TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS stroing_bestillinger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bruker TEXT NOT NULL,
		bestillings_dato TEXT NOT NULL,
		onske_dato TEXT NOT NULL,
		kommentar TEXT,
		status TEXT NOT NULL DEFAULT 'Pending',
		utfort_dato TEXT,
		utfort_av TEXT,
		fakturert INTEGER DEFAULT 0,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stroing_status_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bestilling_id INTEGER,
		old_status TEXT,
		new_status TEXT,
		changed_by TEXT,
		changed_at TEXT,
		FOREIGN KEY (bestilling_id) REFERENCES stroing_bestillinger(id)
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT,
		datetime TEXT,
		comment TEXT,
		innsender TEXT,
		status TEXT,
		status_changed_by TEXT,
		status_changed_at TEXT,
		hidden INTEGER DEFAULT 0,
		is_alert INTEGER DEFAULT 0,
		display_on_weather INTEGER DEFAULT 0,
		expiry_date TEXT,
		target_group TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS login_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT,
		login_time TEXT,
		success INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tunbroyting_bruker ON tunbroyting_bestillinger(bruker)`,
	`CREATE INDEX IF NOT EXISTS idx_tunbroyting_ankomst ON tunbroyting_bestillinger(ankomst_dato)`,
	`CREATE INDEX IF NOT EXISTS idx_stroing_bruker ON stroing_bestillinger(bruker)`,
	`CREATE INDEX IF NOT EXISTS idx_stroing_onske_dato ON stroing_bestillinger(onske_dato)`,
	`CREATE INDEX IF NOT EXISTS idx_stroing_status ON stroing_bestillinger(status)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_datetime ON feedback(datetime)`,
}

// EnsureSchema creates missing tables and indexes on startup.
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
