// Package classify maps free-text transaction descriptions to spending
// categories through an ordered keyword rule table. The table is the single
// source of truth: presentation variants (display codes, colors) are views
// over the same rules, never a second keyword list.
package classify

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryOther is returned when no rule matches.
const CategoryOther = "Other"

// CategoryManagement names the administrative fee category. The detector
// keys its management-fee pass off this category, so the constant rather
// than a second keyword list decides what counts as administration.
const CategoryManagement = "Management & Admin"

// Rule binds a category to the keywords that select it, plus its display
// attributes. Rule order is significant: a description matching two rules
// resolves to the earlier one.
type Rule struct {
	Category    string   `yaml:"category"`
	Keywords    []string `yaml:"keywords"`
	DisplayCode string   `yaml:"display_code"`
	Color       string   `yaml:"color"`
}

// Classifier holds the ordered rule table.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over the builtin rule table.
func New() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewWithRules returns a classifier over a custom ordered table.
func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// LoadRules reads an ordered rule table from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// Classify returns the category of the first rule with a case-insensitive
// keyword substring match in description, or CategoryOther.
func (c *Classifier) Classify(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Category
			}
		}
	}
	return CategoryOther
}

// View is a presentation projection of a category: its short display code
// and color. Unknown categories get the fallback view.
type View struct {
	Category    string `json:"category"`
	DisplayCode string `json:"display_code"`
	Color       string `json:"color"`
}

// ViewFor returns the display view of a category.
func (c *Classifier) ViewFor(category string) View {
	for _, rule := range c.rules {
		if rule.Category == category {
			return View{Category: rule.Category, DisplayCode: rule.DisplayCode, Color: rule.Color}
		}
	}
	return View{Category: CategoryOther, DisplayCode: "OTH", Color: "#9e9e9e"}
}

// Categories lists the table's categories in rule order, ending with
// CategoryOther.
func (c *Classifier) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		out = append(out, rule.Category)
	}
	return append(out, CategoryOther)
}
