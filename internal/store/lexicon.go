package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/podium/internal/speech"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// TermCategory identifies which lexicon a term belongs to.
type TermCategory string

const (
	// TermFiller marks a speech disfluency term.
	TermFiller TermCategory = "filler"
	// TermPositive marks a positive sentiment term.
	TermPositive TermCategory = "positive"
	// TermNegative marks a negative sentiment term.
	TermNegative TermCategory = "negative"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c TermCategory) bool {
	switch c {
	case TermFiller, TermPositive, TermNegative:
		return true
	}
	return false
}

// Term represents one lexicon entry stored in the database.
type Term struct {
	ID        string
	Term      string
	Category  TermCategory
	CreatedAt time.Time
}

// LexiconRepository provides CRUD operations for lexicon terms.
type LexiconRepository struct {
	db *sql.DB
}

// Lexicon returns the lexicon repository for this store.
func (s *Store) Lexicon() *LexiconRepository {
	return &LexiconRepository{db: s.db}
}

// Add inserts a new term into the given lexicon.
func (r *LexiconRepository) Add(term string, category TermCategory) (*Term, error) {
	t := &Term{
		ID:        uuid.NewString(),
		Term:      term,
		Category:  category,
		CreatedAt: time.Now(),
	}

	_, err := r.db.Exec(
		`INSERT INTO lexicon_terms (id, term, category, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Term, string(t.Category), t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// List retrieves all terms ordered by category, then term.
func (r *LexiconRepository) List() ([]*Term, error) {
	rows, err := r.db.Query(
		`SELECT id, term, category, created_at FROM lexicon_terms ORDER BY category, term`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*Term
	for rows.Next() {
		t := &Term{}
		var category string

		if err := rows.Scan(&t.ID, &t.Term, &category, &t.CreatedAt); err != nil {
			return nil, err
		}

		t.Category = TermCategory(category)
		terms = append(terms, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// Remove deletes a term by its ID.
func (r *LexiconRepository) Remove(id string) error {
	result, err := r.db.Exec(`DELETE FROM lexicon_terms WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Build assembles the stored terms into the analyzer's lexicon value.
func (r *LexiconRepository) Build() (speech.Lexicon, error) {
	terms, err := r.List()
	if err != nil {
		return speech.Lexicon{}, err
	}

	var lex speech.Lexicon
	for _, t := range terms {
		switch t.Category {
		case TermFiller:
			lex.Fillers = append(lex.Fillers, t.Term)
		case TermPositive:
			lex.Positive = append(lex.Positive, t.Term)
		case TermNegative:
			lex.Negative = append(lex.Negative, t.Term)
		}
	}

	return lex, nil
}
