package classify

import "testing"

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		description string
		expected    string
	}{
		{"Personal Care - Morning Shift", "Personal Care"},
		{"Weekly Cleaning Service", "Domestic Assistance"},
		{"Community Nursing Visit", "Nursing & Health"},
		{"Plan Management Fee", "Management & Admin"},
		{"ADMIN CHARGE", "Management & Admin"},
		{"Transport to appointment", "Transport"},
		{"Grocery Store", "Other"},
		{"Direct Deposit", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := c.Classify(tt.description); got != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.description, got, tt.expected)
			}
		})
	}
}

// Rule order resolves overlaps: "support coordination" contains vocabulary
// from both the management rule and the social support rule, and the
// management rule appears first.
func TestClassifyOrderWins(t *testing.T) {
	c := New()
	if got := c.Classify("Support Coordination - monthly"); got != "Management & Admin" {
		t.Errorf("got %q, want Management & Admin", got)
	}
}

func TestViewFor(t *testing.T) {
	c := New()

	v := c.ViewFor("Personal Care")
	if v.DisplayCode != "PC" || v.Color == "" {
		t.Errorf("unexpected view %+v", v)
	}

	fallback := c.ViewFor("No Such Category")
	if fallback.Category != CategoryOther || fallback.DisplayCode != "OTH" {
		t.Errorf("unexpected fallback view %+v", fallback)
	}
}

func TestNewWithRules(t *testing.T) {
	c := NewWithRules([]Rule{
		{Category: "Groceries", Keywords: []string{"grocery"}, DisplayCode: "GRC", Color: "#000"},
	})
	if got := c.Classify("Grocery Store"); got != "Groceries" {
		t.Errorf("got %q, want Groceries", got)
	}
	if got := c.Classify("Cleaning"); got != CategoryOther {
		t.Errorf("got %q, want Other", got)
	}
}

func TestCategoriesEndsWithOther(t *testing.T) {
	cats := New().Categories()
	if len(cats) == 0 || cats[len(cats)-1] != CategoryOther {
		t.Errorf("expected trailing %q, got %v", CategoryOther, cats)
	}
}
