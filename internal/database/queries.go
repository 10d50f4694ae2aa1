package database

import (
	"database/sql"

	"github.com/TobiSchelling/geodash/internal/assets"
	"github.com/TobiSchelling/geodash/internal/metricreg"
)

// GetBrands returns all brands, tracked brands first.
func (db *DB) GetBrands() ([]Brand, error) {
	rows, err := db.conn.Query("SELECT id, name, competitor FROM brands ORDER BY competitor, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		var b Brand
		var competitor int
		if err := rows.Scan(&b.ID, &b.Name, &competitor); err != nil {
			return nil, err
		}
		b.Competitor = competitor != 0
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// GetTopics returns the topics of the filtered brand.
func (db *DB) GetTopics(f Filter) ([]Topic, error) {
	var w where
	w.eq("brand_id", f.BrandID)
	w.eq("id", f.TopicID)

	rows, err := db.conn.Query("SELECT id, brand_id, name FROM topics"+w.String()+" ORDER BY name", w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.BrandID, &t.Name); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// GetAnswers returns answers for the filtered brand, newest first.
func (db *DB) GetAnswers(f Filter) ([]Answer, error) {
	var w where
	w.eq("brand_id", f.BrandID)
	w.in("model_id", f.ModelIDs)
	w.eq("topic_id", f.TopicID)
	w.eq("region_id", f.RegionID)
	w.dates("date", f)

	rows, err := db.conn.Query(
		`SELECT id, brand_id, model_id, topic_id, region_id, date, question, answer, mentioned, position
		FROM answers`+w.String()+` ORDER BY date DESC, id`, w.args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		var mentioned int
		var position sql.NullInt64
		if err := rows.Scan(&a.ID, &a.BrandID, &a.ModelID, &a.TopicID, &a.RegionID, &a.Date,
			&a.Question, &a.Answer, &mentioned, &position); err != nil {
			return nil, err
		}
		a.Mentioned = mentioned != 0
		if position.Valid {
			p := int(position.Int64)
			a.Position = &p
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// GetSuggestions returns suggestions for the filtered brand and topic.
func (db *DB) GetSuggestions(f Filter) ([]Suggestion, error) {
	var w where
	w.eq("brand_id", f.BrandID)
	w.eq("topic_id", f.TopicID)

	rows, err := db.conn.Query(
		`SELECT id, brand_id, topic_id, title, body, impact FROM suggestions`+w.String()+
			` ORDER BY CASE impact WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, id`, w.args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []Suggestion
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.ID, &s.BrandID, &s.TopicID, &s.Title, &s.Body, &s.Impact); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// GetAssets returns all content assets in insertion order.
func (db *DB) GetAssets() ([]assets.Asset, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, status, brief_id, spec_id, brand_id, topic_id, body
		FROM content_assets ORDER BY seq`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []assets.Asset
	for rows.Next() {
		var a assets.Asset
		var briefID, specID, brandID, topicID, body sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Status, &briefID, &specID, &brandID, &topicID, &body); err != nil {
			return nil, err
		}
		a.CreatedFrom = assets.Provenance{BriefID: briefID.String, SpecID: specID.String}
		a.BrandID = brandID.String
		a.TopicID = topicID.String
		a.Body = body.String
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetMetricSummaries aggregates metric values per metric, brand and topic.
// Competitors of the filtered brand are included. The sample of a summary
// is the sum of the recorded samples, or unknown when any contributing row
// has no recorded sample.
func (db *DB) GetMetricSummaries(f Filter) ([]MetricSummary, error) {
	var w where
	w.in("brand_id", f.brands())
	w.in("model_id", f.ModelIDs)
	w.eq("topic_id", f.TopicID)
	w.eq("region_id", f.RegionID)
	w.dates("date", f)

	rows, err := db.conn.Query(
		`SELECT metric, brand_id, COALESCE(topic_id, ''), AVG(value), SUM(sample_size),
			COUNT(sample_size) = COUNT(*)
		FROM metric_values`+w.String()+`
		GROUP BY metric, brand_id, COALESCE(topic_id, '')
		ORDER BY brand_id, metric`, w.args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricSummary
	for rows.Next() {
		var m MetricSummary
		var sample sql.NullInt64
		var complete bool
		if err := rows.Scan(&m.Metric, &m.BrandID, &m.TopicID, &m.Value, &sample, &complete); err != nil {
			return nil, err
		}
		m.Sample = metricreg.UnknownSample
		if complete && sample.Valid {
			m.Sample = metricreg.SampleOf(int(sample.Int64))
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM brands", &s.Brands},
		{"SELECT COUNT(*) FROM topics", &s.Topics},
		{"SELECT COUNT(*) FROM answers", &s.Answers},
		{"SELECT COUNT(*) FROM suggestions", &s.Suggestions},
		{"SELECT COUNT(*) FROM content_assets", &s.Assets},
		{"SELECT COUNT(*) FROM metric_values", &s.MetricValues},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}
