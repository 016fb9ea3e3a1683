// Package detector runs the overcharge audit over a session's
// transactions: duplicate charges, statistical outliers, drifting
// recurring fees and excessive management charges. It performs no I/O,
// mutates nothing, and returns identical output for identical input.
package detector

import (
	"fmt"
	"math"
	"sort"

	"carelens/internal/classify"
	"carelens/internal/models"
	"carelens/internal/normalize"
	"carelens/internal/similarity"
)

// ManagementMode selects how the management-fee pass judges overhead lines.
type ManagementMode string

const (
	// ModeSelf audits self-managed statements: management fees above 10%
	// of service charges are an aggregate violation.
	ModeSelf ManagementMode = "self"
	// ModeProvider audits provider-managed statements: management fees
	// are expected, only outsized individual lines are flagged.
	ModeProvider ManagementMode = "provider"
)

// Options carries per-run detection settings.
type Options struct {
	Management ManagementMode
}

const (
	amountTolerance   = 0.50
	dupSimSameDay     = 0.6
	dupSimNearDay     = 0.8
	dupSimRepeat      = 0.85
	nearDayMin        = 1
	nearDayMax        = 3
	outlierFloor      = 50.0
	driftMinPercent   = 10.0
	driftMinAbs       = 5.0
	driftHighPercent  = 50.0
	selfManagedRate   = 0.10
	selfLineLimit     = 100.0
	providerLineLimit = 200.0
	providerAvgRatio  = 0.5
)

// Detector evaluates transaction sets against the audit rules. The
// classifier decides which lines count as management overhead, keeping
// detection and display on the same rule table.
type Detector struct {
	classifier *classify.Classifier
}

func New(classifier *classify.Classifier) *Detector {
	return &Detector{classifier: classifier}
}

// Detect runs all four passes and returns alerts ordered by severity
// (high, medium, low), ties keeping pass order: duplicates, outliers,
// fee drift, management fees. Total over any input; zero or one
// transactions yield no alerts.
func (d *Detector) Detect(txns []*models.Transaction, opts Options) []*models.Alert {
	var alerts []*models.Alert
	alerts = append(alerts, d.findDuplicates(txns)...)
	alerts = append(alerts, d.findOutliers(txns)...)
	alerts = append(alerts, d.findFeeDrift(txns)...)
	alerts = append(alerts, d.findManagementFees(txns, opts.Management)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return models.SeverityRank(alerts[i].Severity) < models.SeverityRank(alerts[j].Severity)
	})
	return alerts
}

// findDuplicates scans every unordered pair. O(n²) is fine at statement
// scale; bucket by date or rounded amount before pairing if that changes.
func (d *Detector) findDuplicates(txns []*models.Transaction) []*models.Alert {
	var alerts []*models.Alert
	for i := 0; i < len(txns); i++ {
		for j := i + 1; j < len(txns); j++ {
			a, b := txns[i], txns[j]

			amountClose := math.Abs(a.Amount-b.Amount) <= amountTolerance
			if !amountClose {
				continue
			}
			sameDate := normalize.CanonicalDate(a.Date) == normalize.CanonicalDate(b.Date)
			sim := similarity.Score(b.Description, a.Description)

			matched := false
			switch {
			case sameDate && sim >= dupSimSameDay:
				matched = true
			case sim >= dupSimNearDay && withinDays(a.Date, b.Date, nearDayMin, nearDayMax):
				matched = true
			case sameDate && sim >= dupSimRepeat:
				matched = true
			}
			if !matched {
				continue
			}

			alerts = append(alerts, &models.Alert{
				Type:     models.AlertDuplicate,
				Severity: models.SeverityHigh,
				Title:    "Possible duplicate charge",
				Description: fmt.Sprintf("%q appears twice (%s and %s) for %s and %s",
					a.Description, displayDate(a.Date), displayDate(b.Date),
					formatAmount(a.Amount), formatAmount(b.Amount)),
				Transactions: []*models.Transaction{a, b},
			})
		}
	}
	return alerts
}

func withinDays(a, b string, min, max int) bool {
	days := normalize.DaysBetween(a, b)
	return days >= min && days <= max
}

// findOutliers flags amounts above Q3 + 1.5*IQR of the absolute amounts.
// Quartiles use plain sorted-index positions, not interpolation. The $50
// floor suppresses noise in small statements where the IQR is tiny.
func (d *Detector) findOutliers(txns []*models.Transaction) []*models.Alert {
	var amounts []float64
	for _, tx := range txns {
		if tx.Amount != 0 {
			amounts = append(amounts, math.Abs(tx.Amount))
		}
	}
	if len(amounts) < 3 {
		return nil
	}

	sort.Float64s(amounts)
	q1 := amounts[len(amounts)/4]
	q3 := amounts[(3*len(amounts))/4]
	upper := q3 + 1.5*(q3-q1)

	var alerts []*models.Alert
	for _, tx := range txns {
		abs := math.Abs(tx.Amount)
		if abs > upper && abs > outlierFloor {
			alerts = append(alerts, &models.Alert{
				Type:     models.AlertUnusual,
				Severity: models.SeverityMedium,
				Title:    "Unusually large amount",
				Description: fmt.Sprintf("%q on %s is %s, well above the typical range for this statement (upper bound %s)",
					tx.Description, displayDate(tx.Date), formatAmount(tx.Amount), formatAmount(upper)),
				Transactions: []*models.Transaction{tx},
			})
		}
	}
	return alerts
}

// findFeeDrift groups recurring lines by normalized description and flags
// groups whose charge moved more than 10% and more than $5 between the
// smallest and largest occurrence.
func (d *Detector) findFeeDrift(txns []*models.Transaction) []*models.Alert {
	groups := make(map[string][]*models.Transaction)
	var order []string // first-appearance order keeps output deterministic
	for _, tx := range txns {
		key := similarity.Normalize(tx.Description)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], tx)
	}

	var alerts []*models.Alert
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		distinct := make(map[float64]struct{})
		min, max := math.Inf(1), math.Inf(-1)
		for _, tx := range group {
			abs := math.Round(math.Abs(tx.Amount)*100) / 100
			distinct[abs] = struct{}{}
			if abs < min {
				min = abs
			}
			if abs > max {
				max = abs
			}
		}
		if len(distinct) < 2 || min == 0 {
			continue
		}

		percent := (max - min) / min * 100
		if percent <= driftMinPercent || max-min <= driftMinAbs {
			continue
		}

		severity := models.SeverityMedium
		if percent > driftHighPercent {
			severity = models.SeverityHigh
		}

		sorted := make([]*models.Transaction, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return normalize.CanonicalDate(sorted[i].Date) < normalize.CanonicalDate(sorted[j].Date)
		})

		alerts = append(alerts, &models.Alert{
			Type:     models.AlertChanged,
			Severity: severity,
			Title:    "Recurring charge changed",
			Description: fmt.Sprintf("%q varies between %s and %s across %d occurrences (%.1f%% change)",
				sorted[0].Description, formatAmount(min), formatAmount(max), len(group), percent),
			Transactions: sorted,
		})
	}
	return alerts
}

// findManagementFees splits expenses into management and service lines and
// applies the mode-specific rules.
func (d *Detector) findManagementFees(txns []*models.Transaction, mode ManagementMode) []*models.Alert {
	var management, service []*models.Transaction
	for _, tx := range txns {
		if tx.Amount >= 0 {
			continue
		}
		if d.classifier.Classify(tx.Description) == classify.CategoryManagement {
			management = append(management, tx)
		} else {
			service = append(service, tx)
		}
	}
	if len(management) == 0 {
		return nil
	}

	var mgmtTotal, serviceTotal float64
	for _, tx := range management {
		mgmtTotal += math.Abs(tx.Amount)
	}
	for _, tx := range service {
		serviceTotal += math.Abs(tx.Amount)
	}

	if mode == ModeProvider {
		var avgService float64
		if len(service) > 0 {
			avgService = serviceTotal / float64(len(service))
		}
		var alerts []*models.Alert
		for _, tx := range management {
			abs := math.Abs(tx.Amount)
			if abs > providerLineLimit || (avgService > 0 && abs > providerAvgRatio*avgService) {
				alerts = append(alerts, &models.Alert{
					Type:     models.AlertManagementFee,
					Severity: models.SeverityMedium,
					Title:    "Large management charge",
					Description: fmt.Sprintf("Management line %q on %s is %s",
						tx.Description, displayDate(tx.Date), formatAmount(tx.Amount)),
					Transactions: []*models.Transaction{tx},
				})
			}
		}
		return alerts
	}

	// Self-managed: the 10% aggregate rule, then oversized individual
	// lines that were not already covered by the aggregate alert.
	var alerts []*models.Alert
	covered := make(map[*models.Transaction]bool)
	if serviceTotal > 0 && mgmtTotal > selfManagedRate*serviceTotal {
		rate := mgmtTotal / serviceTotal * 100
		alerts = append(alerts, &models.Alert{
			Type:     models.AlertManagementFee,
			Severity: models.SeverityHigh,
			Title:    "Management fees exceed 10% of services",
			Description: fmt.Sprintf("Management charges total %s against %s of services (%.1f%%)",
				formatAmount(mgmtTotal), formatAmount(serviceTotal), rate),
			Transactions: management,
		})
		for _, tx := range management {
			covered[tx] = true
		}
	}
	for _, tx := range management {
		if covered[tx] {
			continue
		}
		if math.Abs(tx.Amount) > selfLineLimit {
			alerts = append(alerts, &models.Alert{
				Type:     models.AlertManagementFee,
				Severity: models.SeverityMedium,
				Title:    "Large management charge",
				Description: fmt.Sprintf("Management line %q on %s is %s",
					tx.Description, displayDate(tx.Date), formatAmount(tx.Amount)),
				Transactions: []*models.Transaction{tx},
			})
		}
	}
	return alerts
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", math.Abs(v))
}

func displayDate(date string) string {
	if d := normalize.CanonicalDate(date); d != "" {
		return d
	}
	return "an unknown date"
}
