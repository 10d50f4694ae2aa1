package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS brands (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    competitor INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS topics (
    id TEXT PRIMARY KEY,
    brand_id TEXT NOT NULL,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS answers (
    id TEXT PRIMARY KEY,
    brand_id TEXT NOT NULL,
    model_id TEXT NOT NULL,
    topic_id TEXT,
    region_id TEXT,
    date TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    mentioned INTEGER DEFAULT 0,
    position INTEGER
);

CREATE TABLE IF NOT EXISTS suggestions (
    id TEXT PRIMARY KEY,
    brand_id TEXT NOT NULL,
    topic_id TEXT,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    impact TEXT
);

CREATE TABLE IF NOT EXISTS content_assets (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT UNIQUE NOT NULL,
    title TEXT NOT NULL,
    status TEXT NOT NULL,
    brief_id TEXT,
    spec_id TEXT,
    brand_id TEXT,
    topic_id TEXT,
    body TEXT
);

CREATE TABLE IF NOT EXISTS metric_values (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    metric TEXT NOT NULL,
    brand_id TEXT NOT NULL,
    topic_id TEXT,
    model_id TEXT,
    region_id TEXT,
    date TEXT NOT NULL,
    value REAL NOT NULL,
    sample_size INTEGER
);

CREATE INDEX IF NOT EXISTS idx_answers_brand_date ON answers(brand_id, date);
CREATE INDEX IF NOT EXISTS idx_metric_values_brand_date ON metric_values(brand_id, date);
CREATE INDEX IF NOT EXISTS idx_suggestions_brand ON suggestions(brand_id);
`)
			return err
		},
	},
	{
		Version:     2,
		Description: "asset provenance indexes",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_content_assets_brief ON content_assets(brief_id);
CREATE INDEX IF NOT EXISTS idx_content_assets_spec ON content_assets(spec_id);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
