package wordlist

import "testing"

func TestFilterRomaji(t *testing.T) {
	filter := FilterFor("romaji")
	for _, phrase := range []string{"tokyo", "Ohayou gozaimasu", "kon'nichiwa"} {
		if !filter(phrase) {
			t.Fatalf("expected %q to pass romaji filter", phrase)
		}
	}
	for _, phrase := range []string{"", "東京", "tōkyō", "neko1"} {
		if filter(phrase) {
			t.Fatalf("expected %q to be rejected", phrase)
		}
	}
}

func TestApplyCountsRejected(t *testing.T) {
	kept, rejected := Apply([]string{"neko", "ねこ", "inu"}, FilterFor("romaji"))
	if len(kept) != 2 || kept[0] != "neko" || kept[1] != "inu" {
		t.Fatalf("unexpected kept phrases: %v", kept)
	}
	if rejected != 1 {
		t.Fatalf("expected 1 rejected, got %d", rejected)
	}
	kept, rejected = Apply([]string{"ねこ"}, FilterFor(""))
	if len(kept) != 1 || rejected != 0 {
		t.Fatalf("default filter must keep everything")
	}
}
