package rules

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"tidy/internal/config"
)

// FallbackCategory is the bucket for files no rule or extension covers.
const FallbackCategory = "misc"

// Rule pairs a compiled filename pattern with its category.
type Rule struct {
	Pattern  string
	Category string

	re *regexp.Regexp
}

// Table resolves filenames to categories. The zero value is not usable;
// construct with NewTable or FromConfig.
type Table struct {
	rules      []Rule
	extensions map[string]string
}

// NewTable returns a table seeded with the built-in extension mappings.
func NewTable() *Table {
	extensions := make(map[string]string, len(builtinExtensions))
	for ext, category := range builtinExtensions {
		extensions[ext] = category
	}
	return &Table{extensions: extensions}
}

// FromConfig builds a table from the built-in defaults overlaid with the
// configured extension mappings and custom rules, preserving rule order.
func FromConfig(cfg *config.Config) (*Table, error) {
	table := NewTable()
	if cfg == nil {
		return table, nil
	}
	for ext, category := range cfg.Extensions {
		if err := table.AddExtension(ext, category); err != nil {
			return nil, err
		}
	}
	for _, rule := range cfg.Rules {
		if err := table.AddRule(rule.Pattern, rule.Category); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// AddRule registers a custom rule. Rules match in registration order, ahead
// of the extension table.
func (t *Table) AddRule(pattern, category string) error {
	pattern = strings.TrimSpace(pattern)
	category = strings.TrimSpace(category)
	if pattern == "" {
		return fmt.Errorf("rule pattern cannot be empty")
	}
	if category == "" {
		return fmt.Errorf("rule category cannot be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compile rule pattern %q: %w", pattern, err)
	}
	t.rules = append(t.rules, Rule{Pattern: pattern, Category: category, re: re})
	return nil
}

// AddExtension maps an extension to a category. Re-adding an extension
// overwrites the previous mapping; this is not an error.
func (t *Table) AddExtension(ext, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Errorf("extension category cannot be empty")
	}
	key, err := config.NormalizeExtension(ext)
	if err != nil {
		return err
	}
	t.extensions[key] = category
	return nil
}

// CategoryFor resolves the category for a filename. It is a pure function of
// the current table contents: custom rules first in order, then the
// extension table, then FallbackCategory.
func (t *Table) CategoryFor(filename string) string {
	name := filepath.Base(filename)

	for _, rule := range t.rules {
		if rule.re.MatchString(name) {
			return rule.Category
		}
	}

	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		if category, ok := t.extensions[ext]; ok {
			return category
		}
	}

	return FallbackCategory
}

// Rules returns the registered custom rules in evaluation order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Extensions returns a copy of the extension table.
func (t *Table) Extensions() map[string]string {
	out := make(map[string]string, len(t.extensions))
	for ext, category := range t.extensions {
		out[ext] = category
	}
	return out
}

// Categories returns every category this table can produce, sorted, with the
// fallback included. The reconciler treats these names as the directories
// tidy may have created.
func (t *Table) Categories() []string {
	set := map[string]struct{}{FallbackCategory: {}}
	for _, category := range t.extensions {
		set[category] = struct{}{}
	}
	for _, rule := range t.rules {
		set[rule.Category] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for category := range set {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
