package kernelogo

import (
	"errors"
	"fmt"
	"io"

	"github.com/esimov/kernelogo/utils"
	"gopkg.in/yaml.v3"
)

// Entry describes the colors and labels of a single kernel logo.
type Entry struct {
	ID         string `yaml:"id"`
	Background string `yaml:"bg"`
	Foreground string `yaml:"fg"`
	Label      string `yaml:"text"`
	Sublabel   string `yaml:"sub,omitempty"`
}

// HasSublabel reports whether the logo carries a secondary label.
func (e Entry) HasSublabel() bool {
	return e.Sublabel != ""
}

// Placeholder is the entry used for identifiers missing from the table.
var Placeholder = Entry{
	Background: "#666666",
	Foreground: "white",
	Label:      "?",
}

// Table is an ordered list of kernel logo entries.
// The order is preserved in every generated output.
type Table []Entry

// DefaultTable holds the kernels shipped with the notebook image.
var DefaultTable = Table{
	{ID: "python2.7", Background: "#3776AB", Foreground: "white", Label: "Py", Sublabel: "2.7"},
	{ID: "python3", Background: "#3776AB", Foreground: "white", Label: "Py", Sublabel: "3"},
	{ID: "python3.13", Background: "#3776AB", Foreground: "white", Label: "Py", Sublabel: "3.13"},
	{ID: "python3.14", Background: "#4B8BBE", Foreground: "white", Label: "Py", Sublabel: "3.14β"},

	{ID: "cpp11", Background: "#00599C", Foreground: "white", Label: "C++", Sublabel: "11"},
	{ID: "cpp14", Background: "#00599C", Foreground: "white", Label: "C++", Sublabel: "14"},
	{ID: "cpp17", Background: "#00599C", Foreground: "white", Label: "C++", Sublabel: "17"},
	{ID: "cpp23", Background: "#00599C", Foreground: "white", Label: "C++", Sublabel: "23"},
	{ID: "cpp26", Background: "#004482", Foreground: "white", Label: "C++", Sublabel: "26β"},

	{ID: "java11", Background: "#007396", Foreground: "white", Label: "Java", Sublabel: "11"},
	{ID: "java17", Background: "#007396", Foreground: "white", Label: "Java", Sublabel: "17"},
	{ID: "java24", Background: "#5382A1", Foreground: "white", Label: "Java", Sublabel: "24β"},

	{ID: "dotnet7-csharp", Background: "#512BD4", Foreground: "white", Label: "C#", Sublabel: ".NET7"},
	{ID: "dotnet8-csharp", Background: "#512BD4", Foreground: "white", Label: "C#", Sublabel: ".NET8"},
	{ID: "dotnet9-csharp", Background: "#68217A", Foreground: "white", Label: "C#", Sublabel: ".NET9β"},

	{ID: "gophernotes", Background: "#00ADD8", Foreground: "white", Label: "Go"},
	{ID: "julia-1.11", Background: "#9558B2", Foreground: "white", Label: "Jl", Sublabel: "1.11"},
	{ID: "rust", Background: "#CE422B", Foreground: "white", Label: "Rs"},
	{ID: "tslab", Background: "#3178C6", Foreground: "white", Label: "TS"},
	{ID: "ir", Background: "#276DC3", Foreground: "white", Label: "R"},
	{ID: "kotlin", Background: "#7F52FF", Foreground: "white", Label: "Kt"},
	{ID: "scala", Background: "#DC322F", Foreground: "white", Label: "Sc"},
	{ID: "bash", Background: "#4EAA25", Foreground: "white", Label: "Sh"},
	{ID: "sparql", Background: "#0C479C", Foreground: "white", Label: "SQ"},
}

// Lookup returns the entry registered under id.
// Unknown identifiers resolve to the Placeholder entry with the ID filled in.
func (t Table) Lookup(id string) (Entry, bool) {
	for _, e := range t {
		if e.ID == id {
			return e, true
		}
	}
	p := Placeholder
	p.ID = id
	return p, false
}

// Validate checks that every entry has a unique identifier,
// a primary label and parseable colors.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for i, e := range t {
		if e.ID == "" {
			return fmt.Errorf("entry #%d: missing identifier", i)
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("entry %q: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}

		if e.Label == "" {
			return fmt.Errorf("entry %q: missing label", e.ID)
		}
		if _, err := utils.ParseColor(e.Background); err != nil {
			return fmt.Errorf("entry %q: background: %w", e.ID, err)
		}
		if _, err := utils.ParseColor(e.Foreground); err != nil {
			return fmt.Errorf("entry %q: foreground: %w", e.ID, err)
		}
	}
	return nil
}

// ErrDuplicateID is returned when two table entries share the same identifier.
var ErrDuplicateID = errors.New("duplicate identifier")

// tableFile is the on-disk representation of a Table.
type tableFile struct {
	Kernels Table `yaml:"kernels"`
}

// LoadTable decodes a YAML table definition and validates it.
func LoadTable(r io.Reader) (Table, error) {
	var tf tableFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("could not decode the kernel table: %w", err)
	}
	if len(tf.Kernels) == 0 {
		return nil, errors.New("the kernel table is empty")
	}
	if err := tf.Kernels.Validate(); err != nil {
		return nil, err
	}
	return tf.Kernels, nil
}

// WriteYAML encodes the table in the format accepted by LoadTable.
func (t Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tableFile{Kernels: t}); err != nil {
		return err
	}
	return enc.Close()
}
