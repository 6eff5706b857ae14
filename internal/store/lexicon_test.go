package store

import (
	"errors"
	"testing"
)

func TestLexiconRepository_AddAndList(t *testing.T) {
	s := newTestStore(t)
	repo := s.Lexicon()

	before, err := repo.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	added, err := repo.Add("err", TermFiller)
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if added.ID == "" {
		t.Error("Add() should assign an ID")
	}

	after, err := repo.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("List() length = %d, want %d", len(after), len(before)+1)
	}
}

func TestLexiconRepository_AddDuplicateFails(t *testing.T) {
	s := newTestStore(t)
	repo := s.Lexicon()

	// "um" is seeded as a filler.
	if _, err := repo.Add("um", TermFiller); err == nil {
		t.Error("Add() of a duplicate term+category should fail")
	}

	// Same word in a different category is fine.
	if _, err := repo.Add("um", TermNegative); err != nil {
		t.Errorf("Add() of same term in another category failed: %v", err)
	}
}

func TestLexiconRepository_Remove(t *testing.T) {
	s := newTestStore(t)
	repo := s.Lexicon()

	added, err := repo.Add("splendid", TermPositive)
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	if err := repo.Remove(added.ID); err != nil {
		t.Errorf("Remove() failed: %v", err)
	}

	if err := repo.Remove(added.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
}

func TestLexiconRepository_BuildReflectsEdits(t *testing.T) {
	s := newTestStore(t)
	repo := s.Lexicon()

	if _, err := repo.Add("dreadful", TermNegative); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	lex, err := repo.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	found := false
	for _, term := range lex.Negative {
		if term == "dreadful" {
			found = true
		}
	}
	if !found {
		t.Error("Build() should include the newly added negative term")
	}
}

func TestValidCategory(t *testing.T) {
	tests := []struct {
		category TermCategory
		want     bool
	}{
		{TermFiller, true},
		{TermPositive, true},
		{TermNegative, true},
		{TermCategory("emoji"), false},
		{TermCategory(""), false},
	}

	for _, tt := range tests {
		if got := ValidCategory(tt.category); got != tt.want {
			t.Errorf("ValidCategory(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
