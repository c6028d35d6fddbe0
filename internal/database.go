package internal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type DatabaseManager struct {
	DB      *sql.DB
	Enabled bool
	logger  *Logger
}

func NewDatabaseManager(cfg *Config, logger *Logger) *DatabaseManager {
	if !cfg.DatabaseEnabled {
		logger.Info("database_disabled").
			Component("database").
			Operation("init").
			Log()
		return &DatabaseManager{Enabled: false, logger: logger}
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresDB,
		cfg.PostgresSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("database_open_failed").
			Component("database").
			Operation("init").
			Err(err).
			Log()
		return &DatabaseManager{Enabled: false, logger: logger}
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.Error("database_ping_failed").
			Component("database").
			Operation("init").
			Err(err).
			Log()
		return &DatabaseManager{Enabled: false, logger: logger}
	}

	logger.Info("database_connected").
		Component("database").
		Operation("init").
		Log()
	return &DatabaseManager{
		DB:      db,
		Enabled: true,
		logger:  logger,
	}
}

func (dm *DatabaseManager) RecordLookup(event LookupEvent) error {
	if !dm.Enabled {
		return nil
	}

	query := `
		INSERT INTO lookup_audit (request_id, endpoint, platform, summoner, team, status, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := dm.DB.Exec(query,
		event.RequestID,
		event.Endpoint,
		event.Platform,
		event.Summoner,
		event.Team,
		event.Status,
		event.DurationMs,
		event.Timestamp,
	)
	if err != nil {
		dm.logger.Error("lookup_audit_insert_failed").
			Component("database").
			Operation("record_lookup").
			Lookup(event.Platform, event.Summoner, event.Endpoint).
			Err(err).
			Log()
		return err
	}

	return nil
}

func (dm *DatabaseManager) GetLookupStats() (*LookupStats, error) {
	if !dm.Enabled {
		return &LookupStats{ByEndpoint: map[string]int64{}}, nil
	}

	stats := &LookupStats{ByEndpoint: make(map[string]int64)}

	if err := dm.DB.QueryRow("SELECT COUNT(*) FROM lookup_audit").Scan(&stats.Total); err != nil {
		return nil, err
	}

	err := dm.DB.QueryRow(
		"SELECT COUNT(*) FROM lookup_audit WHERE created_at > NOW() - INTERVAL '24 hours'",
	).Scan(&stats.Recent)
	if err != nil {
		return nil, err
	}

	rows, err := dm.DB.Query("SELECT endpoint, COUNT(*) FROM lookup_audit GROUP BY endpoint")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var endpoint string
		var count int64
		if err := rows.Scan(&endpoint, &count); err != nil {
			return nil, err
		}
		stats.ByEndpoint[endpoint] = count
	}

	return stats, rows.Err()
}

func (dm *DatabaseManager) Close() {
	if dm.Enabled && dm.DB != nil {
		dm.DB.Close()
	}
}
