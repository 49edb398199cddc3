// Package settings stores and validates form settings for the CMD web
// interface against a TOML schema. The schema declares every form field
// with its kind (static, choices, range or free), default value, optional
// alias and optional render format. A Settings value resolves aliases,
// rejects invalid overrides, and produces both the ordered form values for
// submission and a deterministic fingerprint for caching.
package settings

import (
	"embed"
	"fmt"
	"net/url"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/zeebo/xxh3"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

//go:embed schema/*.toml
var schemaFS embed.FS

// DefaultSchema is the packaged schema matching the current CMD form.
const DefaultSchema = "cmd_2_6.toml"

// Field kinds understood by the validator.
const (
	kindStatic  = "static"
	kindChoices = "choices"
	kindRange   = "range"
	kindFree    = "free"
)

// entry is one field's schema table as decoded from TOML.
type entry struct {
	Kind    string    `toml:"kind"`
	Default any       `toml:"default"`
	Choices []any     `toml:"choices"`
	Range   []float64 `toml:"range"`
	Alias   string    `toml:"alias"`
	Format  string    `toml:"format"`
}

// Settings holds the schema plus user overrides. Keys iterate in sorted
// order so the fingerprint is stable across runs.
type Settings struct {
	schema  map[string]entry
	order   []string
	aliases map[string]string
	user    map[string]any
}

// Load reads a packaged schema by name and returns validated default
// settings.
func Load(name string) (*Settings, error) {
	raw, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading packaged schema %q: %w", name, err)
	}
	return Parse(raw)
}

// Parse decodes a TOML schema and returns validated default settings.
func Parse(raw []byte) (*Settings, error) {
	var schema map[string]entry
	if err := toml.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}

	s := &Settings{
		schema:  schema,
		aliases: make(map[string]string),
		user:    make(map[string]any),
	}
	for k, e := range schema {
		s.order = append(s.order, k)
		if e.Alias != "" {
			s.aliases[e.Alias] = k
		}
	}
	sort.Strings(s.order)

	// Defaults must satisfy their own constraints, or the schema file
	// itself is broken.
	for _, k := range s.order {
		if err := s.validate(k, s.schema[k].Default); err != nil {
			return nil, fmt.Errorf("schema default: %w", err)
		}
	}
	return s, nil
}

// resolve maps a key or alias to its canonical schema key.
func (s *Settings) resolve(key string) (string, error) {
	if _, ok := s.schema[key]; ok {
		return key, nil
	}
	if full, ok := s.aliases[key]; ok {
		return full, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownKey, key)
}

func (s *Settings) validate(key string, v any) error {
	e := s.schema[key]
	switch e.Kind {
	case kindStatic:
		if render(v, "") != render(e.Default, "") {
			return &domain.ValidationError{Key: key, Value: v, Reason: "cannot be overridden"}
		}
	case kindChoices:
		for _, c := range e.Choices {
			if render(v, "") == render(c, "") {
				return nil
			}
		}
		return &domain.ValidationError{Key: key, Value: v, Reason: "is not a valid choice"}
	case kindRange:
		f, ok := asFloat(v)
		if !ok {
			return &domain.ValidationError{Key: key, Value: v, Reason: "is not numeric"}
		}
		if len(e.Range) != 2 || f < e.Range[0] || f > e.Range[1] {
			return &domain.ValidationError{Key: key, Value: v,
				Reason: fmt.Sprintf("is outside range [%g, %g]", e.Range[0], e.Range[1])}
		}
	case kindFree:
		// Anything goes.
	default:
		return &domain.ValidationError{Key: key, Value: v,
			Reason: fmt.Sprintf("has unknown schema kind %q", e.Kind)}
	}
	return nil
}

// Set validates and stores a user override. The key may be an alias.
func (s *Settings) Set(key string, v any) error {
	k, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := s.validate(k, v); err != nil {
		return err
	}
	s.user[k] = v
	return nil
}

// Update applies a batch of user overrides; the first invalid one aborts.
func (s *Settings) Update(overrides map[string]any) error {
	for k, v := range overrides {
		if err := s.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the unformatted effective value for a key or alias.
func (s *Settings) Get(key string) (any, error) {
	k, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if v, ok := s.user[k]; ok {
		return v, nil
	}
	return s.schema[k].Default, nil
}

// Keys returns the canonical schema keys in sorted order.
func (s *Settings) Keys() []string {
	return append([]string(nil), s.order...)
}

// Values returns the formatted form values for submission, in sorted key
// order.
func (s *Settings) Values() url.Values {
	vals := make(url.Values, len(s.order))
	for _, k := range s.order {
		v := s.schema[k].Default
		if u, ok := s.user[k]; ok {
			v = u
		}
		vals.Set(k, render(v, s.schema[k].Format))
	}
	return vals
}

// Encode returns the URL-encoded settings in sorted key order. The same
// settings always encode to the same string.
func (s *Settings) Encode() string {
	return s.Values().Encode()
}

// Fingerprint returns a 16 hex character hash of the encoded settings,
// used as the cache key for results.
func (s *Settings) Fingerprint() string {
	return fmt.Sprintf("%016x", xxh3.HashString(s.Encode()))
}

// render formats a value for form submission, applying the field's format
// pattern when one is declared.
func render(v any, format string) string {
	if format != "" {
		return fmt.Sprintf(format, v)
	}
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%g", x)
	case float32:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
