// Package project loads and saves the print project file.
//
// The on-disk format is the JSON document the application has always
// used: an object with a "cards" map of image name to repeat count plus
// page settings. Card order is the placement order on the page, and
// JSON objects decode into unordered Go maps, so the cards are kept as
// an explicit ordered list and decoded from the token stream to
// preserve document order.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/layout"
)

// DefaultFile is the project file name inside a workspace.
const DefaultFile = "print.json"

// defaultOutputName is the output document name used when the project
// has no usable filename.
const defaultOutputName = "_printme"

// Card is one entry in the ordered card list.
type Card struct {
	Name  string
	Count int
}

// CardList is an insertion-ordered name-to-count mapping with JSON
// round-tripping that preserves order.
type CardList []Card

// Project mirrors the print.json document.
type Project struct {
	Cards     CardList `json:"cards"`
	Size      [2]int   `json:"size"`
	Columns   int      `json:"columns"`
	PageSize  string   `json:"pagesize"`
	PageSizes []string `json:"page_sizes"`
	Orient    string   `json:"orient"`
	Filename  string   `json:"filename"`
}

// New returns a fresh project with the application defaults.
func New() *Project {
	return &Project{
		Cards:     CardList{},
		Size:      [2]int{1480, 920},
		Columns:   5,
		PageSize:  "Letter",
		PageSizes: []string{"Letter", "A4", "Legal"},
		Orient:    "Portrait",
		Filename:  defaultOutputName,
	}
}

// Load reads a project file. A missing file is not an error: it yields
// a fresh default project, matching first-run behavior.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read project %s", path)
	}

	p := New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "parse project %s", path)
	}

	// Counts below zero cannot mean anything; clamp them here so the
	// planner never sees them.
	for i := range p.Cards {
		if p.Cards[i].Count < 0 {
			p.Cards[i].Count = 0
		}
	}
	return p, nil
}

// Save writes the project file.
func (p *Project) Save(path string) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode project")
	}
	return os.WriteFile(path, data, 0644)
}

// cardImageExts are the file types Sync treats as cards. The crop
// directory also holds bookkeeping files (the crop cache); those must
// never become cards.
var cardImageExts = map[string]bool{
	".gif":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Sync appends any image in cropDir that the project does not know yet,
// with a repeat count of 1. Existing entries keep their order and count.
// Non-image files are ignored.
func (p *Project) Sync(cropDir string) error {
	entries, err := os.ReadDir(cropDir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read crop dir %s", cropDir)
	}

	known := make(map[string]bool, len(p.Cards))
	for _, c := range p.Cards {
		known[c.Name] = true
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && cardImageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if !known[name] {
			p.Cards = append(p.Cards, Card{Name: name, Count: 1})
		}
	}
	return nil
}

// Get returns the count for a card, or -1 when the card is unknown.
func (p *Project) Get(name string) int {
	for _, c := range p.Cards {
		if c.Name == name {
			return c.Count
		}
	}
	return -1
}

// Set updates the count for a known card, clamping at zero.
func (p *Project) Set(name string, count int) error {
	if count < 0 {
		count = 0
	}
	for i := range p.Cards {
		if p.Cards[i].Name == name {
			p.Cards[i].Count = count
			return nil
		}
	}
	return errors.New(errors.ErrCodeNotFound, "no card named %q in project", name)
}

// Adjust adds delta to a known card's count, clamping at zero.
func (p *Project) Adjust(name string, delta int) error {
	current := p.Get(name)
	if current < 0 {
		return errors.New(errors.ErrCodeNotFound, "no card named %q in project", name)
	}
	return p.Set(name, current+delta)
}

// TotalCards returns the number of physical cards the project prints.
func (p *Project) TotalCards() int {
	total := 0
	for _, c := range p.Cards {
		total += c.Count
	}
	return total
}

// CardCounts converts the card list into planner input.
func (p *Project) CardCounts() []layout.CardCount {
	counts := make([]layout.CardCount, 0, len(p.Cards))
	for _, c := range p.Cards {
		counts = append(counts, layout.CardCount{Ref: c.Name, Count: c.Count})
	}
	return counts
}

// nonWord matches everything the output name strips, per the original
// filename sanitizer.
var nonWord = regexp.MustCompile(`\W`)

// SafeOutputName sanitizes the project filename for use as the output
// document name. Non-word characters are stripped; an empty result
// falls back to the default name.
func (p *Project) SafeOutputName() string {
	name := nonWord.ReplaceAllString(strings.TrimSpace(p.Filename), "")
	if name == "" {
		return defaultOutputName
	}
	return name
}

// OutputPath joins the sanitized output name with a directory and
// extension, e.g. OutputPath(dir, "pdf").
func (p *Project) OutputPath(dir, ext string) string {
	return filepath.Join(dir, p.SafeOutputName()+"."+ext)
}

// MarshalJSON encodes the card list as a JSON object in list order.
func (l CardList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", c.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the list, preserving the
// document's key order via the token stream.
func (l *CardList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("cards: expected object, got %v", tok)
	}

	cards := CardList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("cards: expected string key, got %v", keyTok)
		}

		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("cards: count for %q: %w", key, err)
		}
		cards = append(cards, Card{Name: key, Count: count})
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}

	*l = cards
	return nil
}
