package analysis

import "testing"

func TestLoadVocabularyCategories(t *testing.T) {
	vocabulary, err := LoadVocabulary()
	if err != nil {
		t.Fatalf("LoadVocabulary() error = %v", err)
	}
	if vocabulary.Version != 1 {
		t.Fatalf("version = %d, want 1", vocabulary.Version)
	}
	for _, category := range []string{
		CategoryTechnicalSkills,
		CategorySoftSkills,
		CategoryCertifications,
		CategoryEducation,
	} {
		if len(vocabulary.Entries(category)) == 0 {
			t.Fatalf("category %q is empty", category)
		}
	}
}

func TestVocabularyEntriesUnknownCategory(t *testing.T) {
	vocabulary, err := LoadVocabulary()
	if err != nil {
		t.Fatalf("LoadVocabulary() error = %v", err)
	}
	if entries := vocabulary.Entries("hobbies"); entries != nil {
		t.Fatalf("expected nil for unknown category, got %v", entries)
	}
}
