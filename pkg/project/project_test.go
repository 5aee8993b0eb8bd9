package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/proxypress/proxypress/pkg/errors"
)

func TestCardListOrderRoundTrip(t *testing.T) {
	doc := `{"zebra.png":3,"alpha.png":1,"mid.png":2}`

	var cards CardList
	if err := json.Unmarshal([]byte(doc), &cards); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	wantNames := []string{"zebra.png", "alpha.png", "mid.png"}
	for i, name := range wantNames {
		if cards[i].Name != name {
			t.Errorf("cards[%d].Name = %q, want %q", i, cards[i].Name, name)
		}
	}

	out, err := json.Marshal(cards)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != doc {
		t.Errorf("round trip = %s, want %s", out, doc)
	}
}

func TestCardListRejectsNonObject(t *testing.T) {
	var cards CardList
	if err := json.Unmarshal([]byte(`[1,2,3]`), &cards); err == nil {
		t.Error("Unmarshal() of array succeeded, want error")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "print.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.PageSize != "Letter" || p.Orient != "Portrait" {
		t.Errorf("defaults = %q/%q, want Letter/Portrait", p.PageSize, p.Orient)
	}
	if len(p.Cards) != 0 {
		t.Errorf("default project has %d cards, want 0", len(p.Cards))
	}
}

func TestLoadClampsNegativeCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "print.json")
	doc := `{"cards":{"a.png":-4,"b.png":2},"pagesize":"A4","orient":"Landscape"}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := p.Get("a.png"); got != 0 {
		t.Errorf("a.png count = %d, want 0", got)
	}
	if got := p.Get("b.png"); got != 2 {
		t.Errorf("b.png count = %d, want 2", got)
	}
	if p.PageSize != "A4" || p.Orient != "Landscape" {
		t.Errorf("settings = %q/%q, want A4/Landscape", p.PageSize, p.Orient)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "print.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidProject) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidProject)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "print.json")

	p := New()
	p.Cards = CardList{{Name: "z.png", Count: 2}, {Name: "a.png", Count: 1}}
	p.PageSize = "Legal"
	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.PageSize != "Legal" {
		t.Errorf("PageSize = %q, want Legal", got.PageSize)
	}
	if got.Cards[0].Name != "z.png" || got.Cards[1].Name != "a.png" {
		t.Errorf("card order lost: %+v", got.Cards)
	}
}

func TestSyncAddsNewImagesOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"old.png", "new1.png", "new2.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Bookkeeping files living next to the images are not cards.
	for _, name := range []string{"img.cache", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	p := New()
	p.Cards = CardList{{Name: "old.png", Count: 5}}
	if err := p.Sync(dir); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if got := p.Get("old.png"); got != 5 {
		t.Errorf("existing count changed to %d", got)
	}
	if got := p.Get("new1.png"); got != 1 {
		t.Errorf("new1.png count = %d, want 1", got)
	}
	if got := p.Get("new2.jpg"); got != 1 {
		t.Errorf("new2.jpg count = %d, want 1", got)
	}
	if p.Cards[0].Name != "old.png" {
		t.Errorf("existing card moved: %+v", p.Cards)
	}
	for _, name := range []string{"img.cache", "notes.txt"} {
		if got := p.Get(name); got != -1 {
			t.Errorf("%s was synced as a card with count %d", name, got)
		}
	}
}

func TestSetAndAdjustClampAtZero(t *testing.T) {
	p := New()
	p.Cards = CardList{{Name: "a.png", Count: 2}}

	if err := p.Adjust("a.png", -5); err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if got := p.Get("a.png"); got != 0 {
		t.Errorf("count after clamp = %d, want 0", got)
	}

	if err := p.Set("missing.png", 1); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Set(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestTotalCardsAndCardCounts(t *testing.T) {
	p := New()
	p.Cards = CardList{{Name: "a.png", Count: 2}, {Name: "b.png", Count: 0}, {Name: "c.png", Count: 3}}

	if got := p.TotalCards(); got != 5 {
		t.Errorf("TotalCards() = %d, want 5", got)
	}

	counts := p.CardCounts()
	if len(counts) != 3 || counts[2].Ref != "c.png" || counts[2].Count != 3 {
		t.Errorf("CardCounts() = %+v", counts)
	}
}

func TestSafeOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my deck!", "mydeck"},
		{"_printme", "_printme"},
		{"", "_printme"},
		{"!!!", "_printme"},
		{"Deck-v2 (final)", "Deckv2final"},
	}
	for _, tt := range tests {
		p := New()
		p.Filename = tt.in
		if got := p.SafeOutputName(); got != tt.want {
			t.Errorf("SafeOutputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	p := New()
	p.Filename = "deck"
	want := filepath.Join("out", "deck.pdf")
	if got := p.OutputPath("out", "pdf"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}
