package classify

// defaultRules is the builtin ordered rule table for consumer care
// statements. The management rule is first so overhead lines win over
// service categories that share vocabulary (e.g. "support coordination").
func defaultRules() []Rule {
	return []Rule{
		{
			Category:    CategoryManagement,
			Keywords:    []string{"admin", "management", "coordination", "case management", "on-cost", "oncost", "on cost", "establishment fee", "service fee"},
			DisplayCode: "MGT",
			Color:       "#f44336",
		},
		{
			Category:    "Personal Care",
			Keywords:    []string{"personal care", "carer", "care worker", "showering", "hygiene", "grooming", "dressing assist"},
			DisplayCode: "PC",
			Color:       "#2196f3",
		},
		{
			Category:    "Nursing & Health",
			Keywords:    []string{"nursing", "nurse", "physio", "therapy", "podiatry", "medication", "clinical", "wound"},
			DisplayCode: "NRS",
			Color:       "#4caf50",
		},
		{
			Category:    "Domestic Assistance",
			Keywords:    []string{"cleaning", "laundry", "domestic", "housekeeping", "ironing", "house work"},
			DisplayCode: "DOM",
			Color:       "#ff9800",
		},
		{
			Category:    "Meals & Nutrition",
			Keywords:    []string{"meal", "food prep", "nutrition", "catering", "dietitian"},
			DisplayCode: "MLS",
			Color:       "#795548",
		},
		{
			Category:    "Transport",
			Keywords:    []string{"transport", "travel", "mileage", "taxi", "drive to"},
			DisplayCode: "TRN",
			Color:       "#009688",
		},
		{
			Category:    "Social Support",
			Keywords:    []string{"social support", "companionship", "community access", "outing", "group activity"},
			DisplayCode: "SOC",
			Color:       "#9c27b0",
		},
		{
			Category:    "Respite",
			Keywords:    []string{"respite", "overnight stay", "short term accommodation"},
			DisplayCode: "RSP",
			Color:       "#3f51b5",
		},
		{
			Category:    "Equipment & Supplies",
			Keywords:    []string{"equipment", "consumable", "supplies", "continence", "mobility aid"},
			DisplayCode: "EQP",
			Color:       "#607d8b",
		},
		{
			Category:    "Gardening & Maintenance",
			Keywords:    []string{"gardening", "lawn", "home maintenance", "home modification"},
			DisplayCode: "GRD",
			Color:       "#8bc34a",
		},
	}
}
