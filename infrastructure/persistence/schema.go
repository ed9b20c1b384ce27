package persistence

import (
	"database/sql"
	"fmt"

	"vidnotes/infrastructure/logger"
)

// EnsureSchema creates the application tables if they do not exist. This is
// bootstrap DDL in the spirit of a fresh deployment, not a migration tool.
func EnsureSchema(db *sql.DB) error {
	ddls := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			google_id TEXT,
			avatar TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			stripe_id TEXT NOT NULL UNIQUE,
			stripe_status TEXT NOT NULL,
			stripe_price TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS interest_categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			sort_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS user_interests (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			interest_category_id BIGINT REFERENCES interest_categories(id),
			custom_keyword TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, interest_category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS videos (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			youtube_id TEXT NOT NULL,
			title TEXT NOT NULL,
			thumbnail TEXT,
			channel_name TEXT,
			last_position INT NOT NULL DEFAULT 0,
			last_watched_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, youtube_id)
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			video_id BIGINT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			"timestamp" INT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			color TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS note_tags (
			note_id BIGINT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (note_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			video_id BIGINT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			content TEXT NOT NULL DEFAULT '',
			content_json JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, video_id)
		)`,
		`CREATE TABLE IF NOT EXISTS document_tags (
			document_id BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (document_id, tag_id)
		)`,
	}
	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_user_interests_user_id ON user_interests(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_user_updated ON videos(user_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_video_id ON notes(video_id)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_user_status ON subscriptions(user_id, stripe_status)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_video_id ON documents(video_id)`,
	} {
		if _, err := db.Exec(idx); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed creating index")
		}
	}
	return nil
}

type categorySeed struct {
	name  string
	slug  string
	icon  string
	color string
}

var categorySeeds = []categorySeed{
	{"Programming", "programming", "💻", "#3B82F6"},
	{"Web Development", "web-development", "🌐", "#10B981"},
	{"Data Science", "data-science", "📊", "#8B5CF6"},
	{"Machine Learning", "machine-learning", "🤖", "#EC4899"},
	{"Design", "design", "🎨", "#F59E0B"},
	{"Business", "business", "💼", "#6366F1"},
	{"Marketing", "marketing", "📢", "#EF4444"},
	{"Productivity", "productivity", "⚡", "#14B8A6"},
	{"Languages", "languages", "🗣️", "#F97316"},
	{"Science", "science", "🔬", "#06B6D4"},
	{"History", "history", "📜", "#84CC16"},
	{"Philosophy", "philosophy", "🤔", "#A855F7"},
	{"Music", "music", "🎵", "#EC4899"},
	{"Finance", "finance", "💰", "#22C55E"},
	{"Health & Fitness", "health-fitness", "💪", "#EF4444"},
	{"Cooking", "cooking", "🍳", "#F59E0B"},
}

// SeedInterestCategories upserts the fixed interest catalog, keyed on slug
// so re-running at every boot is harmless.
func SeedInterestCategories(db *sql.DB) error {
	q := `INSERT INTO interest_categories (name, slug, icon, color, sort_order)
	      VALUES ($1,$2,$3,$4,$5)
	      ON CONFLICT (slug) DO UPDATE SET
	        name = EXCLUDED.name, icon = EXCLUDED.icon,
	        color = EXCLUDED.color, sort_order = EXCLUDED.sort_order`
	for i, c := range categorySeeds {
		if _, err := db.Exec(q, c.name, c.slug, c.icon, c.color, i); err != nil {
			return fmt.Errorf("seed interest categories: %w", err)
		}
	}
	return nil
}
