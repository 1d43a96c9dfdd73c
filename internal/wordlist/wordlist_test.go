package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPhrasesText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level2.txt")
	data := "# level 2\ntokyo\n\n  osaka  \n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write phrases: %v", err)
	}
	phrases, err := LoadPhrases(path)
	if err != nil {
		t.Fatalf("load phrases: %v", err)
	}
	if len(phrases) != 2 || phrases[0] != "tokyo" || phrases[1] != "osaka" {
		t.Fatalf("unexpected phrases: %v", phrases)
	}
}

func TestLoadPhrasesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions_level3.json")
	if err := os.WriteFile(path, []byte(`["neko", " ", "inu"]`), 0o644); err != nil {
		t.Fatalf("write phrases: %v", err)
	}
	phrases, err := LoadPhrases(path)
	if err != nil {
		t.Fatalf("load phrases: %v", err)
	}
	if len(phrases) != 2 || phrases[1] != "inu" {
		t.Fatalf("unexpected phrases: %v", phrases)
	}
}

func TestLoadPhrasesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n# nothing\n"), 0o644); err != nil {
		t.Fatalf("write phrases: %v", err)
	}
	if _, err := LoadPhrases(path); err == nil {
		t.Fatalf("expected error for empty list")
	}
	if _, err := LoadPhrases(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
