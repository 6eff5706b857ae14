package store

import (
	"time"

	"github.com/ayusman/podium/internal/speech"
	"github.com/google/uuid"
)

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Lexicon terms table - the filler and sentiment word lists the
		// analyzer matches against.
		`CREATE TABLE IF NOT EXISTS lexicon_terms (
			id TEXT PRIMARY KEY,
			term TEXT NOT NULL,
			category TEXT NOT NULL CHECK(category IN ('filler', 'positive', 'negative')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(term, category)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_lexicon_terms_category ON lexicon_terms(category)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// seedLexicons inserts the built-in term lists on first run. An already
// populated table is left alone so user edits survive restarts.
func (s *Store) seedLexicons() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM lexicon_terms`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := speech.DefaultLexicon()
	seed := []struct {
		category TermCategory
		terms    []string
	}{
		{TermFiller, defaults.Fillers},
		{TermPositive, defaults.Positive},
		{TermNegative, defaults.Negative},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, group := range seed {
		for _, term := range group.terms {
			_, err := tx.Exec(
				`INSERT INTO lexicon_terms (id, term, category, created_at) VALUES (?, ?, ?, ?)`,
				uuid.NewString(), term, string(group.category), now,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
