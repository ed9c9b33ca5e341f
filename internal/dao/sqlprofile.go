package dao

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// SQLProfileStore persists profiles in MySQL, for deployments that share
// profiles across instances instead of using the local BoltDB file.
type SQLProfileStore struct {
	db *sql.DB
}

// NewSQLProfileStore connects to MySQL and ensures the schema exists
func NewSQLProfileStore(dsn string) (*SQLProfileStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	s := &SQLProfileStore{db: db}
	if err := s.initDB(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLProfileStore) initDB() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS profile (
		name VARCHAR(191) PRIMARY KEY,
		cipher VARCHAR(32) NOT NULL,
		cipher_key TEXT NOT NULL,
		workers INT NOT NULL DEFAULT 4,
		describe_text TEXT,
		enable BOOLEAN NOT NULL DEFAULT TRUE
	)`)
	if err != nil {
		return fmt.Errorf("failed to create profile table: %w", err)
	}
	return nil
}

// Get retrieves a profile by name
func (s *SQLProfileStore) Get(name string) (*Profile, bool) {
	row := s.db.QueryRow(
		"SELECT name, cipher, cipher_key, workers, describe_text, enable FROM profile WHERE name = ?",
		name)

	var p Profile
	var describe sql.NullString
	if err := row.Scan(&p.Name, &p.Cipher, &p.Key, &p.Workers, &describe, &p.Enable); err != nil {
		return nil, false
	}
	p.Describe = describe.String
	return &p, true
}

// Set stores a profile, replacing any existing row with the same name
func (s *SQLProfileStore) Set(profile *Profile) error {
	_, err := s.db.Exec(
		`INSERT INTO profile (name, cipher, cipher_key, workers, describe_text, enable)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		 cipher = VALUES(cipher), cipher_key = VALUES(cipher_key),
		 workers = VALUES(workers), describe_text = VALUES(describe_text),
		 enable = VALUES(enable)`,
		profile.Name, profile.Cipher, profile.Key, profile.Workers, profile.Describe, profile.Enable)
	if err != nil {
		return fmt.Errorf("failed to save profile %q: %w", profile.Name, err)
	}
	return nil
}

// Delete removes a profile
func (s *SQLProfileStore) Delete(name string) error {
	if _, err := s.db.Exec("DELETE FROM profile WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete profile %q: %w", name, err)
	}
	return nil
}

// GetAll retrieves all profiles sorted by name
func (s *SQLProfileStore) GetAll() ([]*Profile, error) {
	rows, err := s.db.Query(
		"SELECT name, cipher, cipher_key, workers, describe_text, enable FROM profile ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var result []*Profile
	for rows.Next() {
		var p Profile
		var describe sql.NullString
		if err := rows.Scan(&p.Name, &p.Cipher, &p.Key, &p.Workers, &describe, &p.Enable); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		p.Describe = describe.String
		result = append(result, &p)
	}
	return result, rows.Err()
}

// Close closes the MySQL connection
func (s *SQLProfileStore) Close() error {
	return s.db.Close()
}
