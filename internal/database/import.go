package database

import (
	"database/sql"
	"fmt"

	"github.com/TobiSchelling/geodash/internal/fixtures"
)

var dataTables = []string{"brands", "topics", "answers", "suggestions", "content_assets", "metric_values"}

// ImportFixtures replaces the whole dataset with set in one transaction.
func (db *DB) ImportFixtures(set *fixtures.Set) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range dataTables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	steps := []struct {
		name string
		run  func(*sql.Tx, *fixtures.Set) error
	}{
		{"brands", insertBrands},
		{"topics", insertTopics},
		{"answers", insertAnswers},
		{"suggestions", insertSuggestions},
		{"assets", insertAssets},
		{"metrics", insertMetricValues},
	}
	for _, step := range steps {
		if err := step.run(tx, set); err != nil {
			return fmt.Errorf("importing %s: %w", step.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	db.logger.Info().
		Int("brands", len(set.Brands)).
		Int("answers", len(set.Answers)).
		Int("assets", len(set.Assets)).
		Int("metrics", len(set.Metrics)).
		Msg("Imported fixtures")
	return nil
}

func insertBrands(tx *sql.Tx, set *fixtures.Set) error {
	for _, b := range set.Brands {
		if _, err := tx.Exec(
			`INSERT INTO brands (id, name, competitor) VALUES (?, ?, ?)`,
			b.ID, b.Name, b.Competitor,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertTopics(tx *sql.Tx, set *fixtures.Set) error {
	for _, t := range set.Topics {
		if _, err := tx.Exec(
			`INSERT INTO topics (id, brand_id, name) VALUES (?, ?, ?)`,
			t.ID, t.BrandID, t.Name,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertAnswers(tx *sql.Tx, set *fixtures.Set) error {
	for _, a := range set.Answers {
		if _, err := tx.Exec(
			`INSERT INTO answers
			(id, brand_id, model_id, topic_id, region_id, date, question, answer, mentioned, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.BrandID, a.ModelID, nullString(a.TopicID), nullString(a.RegionID),
			a.Date, a.Question, a.Answer, a.Mentioned, a.Position,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertSuggestions(tx *sql.Tx, set *fixtures.Set) error {
	for _, s := range set.Suggestions {
		if _, err := tx.Exec(
			`INSERT INTO suggestions (id, brand_id, topic_id, title, body, impact) VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, s.BrandID, nullString(s.TopicID), s.Title, s.Body, nullString(s.Impact),
		); err != nil {
			return err
		}
	}
	return nil
}

func insertAssets(tx *sql.Tx, set *fixtures.Set) error {
	for _, a := range set.Assets {
		if _, err := tx.Exec(
			`INSERT INTO content_assets (id, title, status, brief_id, spec_id, brand_id, topic_id, body)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Title, a.Status, nullString(a.CreatedFrom.BriefID), nullString(a.CreatedFrom.SpecID),
			nullString(a.BrandID), nullString(a.TopicID), a.Body,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertMetricValues(tx *sql.Tx, set *fixtures.Set) error {
	for _, m := range set.Metrics {
		if _, err := tx.Exec(
			`INSERT INTO metric_values (metric, brand_id, topic_id, model_id, region_id, date, value, sample_size)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Metric, m.BrandID, nullString(m.TopicID), nullString(m.ModelID), nullString(m.RegionID),
			m.Date, m.Value, m.SampleSize,
		); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
