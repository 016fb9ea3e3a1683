package detector

import (
	"reflect"
	"strings"
	"testing"

	"carelens/internal/classify"
	"carelens/internal/models"

	"github.com/google/uuid"
)

func newDetector() *Detector {
	return New(classify.New())
}

func tx(date, description string, amount float64) *models.Transaction {
	return &models.Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Amount:      amount,
	}
}

func alertsOfType(alerts []*models.Alert, t models.AlertType) []*models.Alert {
	var out []*models.Alert
	for _, a := range alerts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func TestDetectEmptyAndSingle(t *testing.T) {
	d := newDetector()
	if got := d.Detect(nil, Options{Management: ModeSelf}); len(got) != 0 {
		t.Errorf("empty input: got %d alerts, want 0", len(got))
	}
	one := []*models.Transaction{tx("2025-01-15", "Personal care morning", -120)}
	if got := d.Detect(one, Options{Management: ModeSelf}); len(got) != 0 {
		t.Errorf("single transaction: got %d alerts, want 0", len(got))
	}
}

func TestDuplicateSameDayRepeat(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-01-15", "Grocery Store", -45.67),
		tx("2025-01-16", "Direct Deposit", 2500.00),
		tx("2025-01-15", "Grocery Store", -45.67),
	}

	alerts := d.Detect(txns, Options{Management: ModeSelf})
	dups := alertsOfType(alerts, models.AlertDuplicate)
	if len(dups) != 1 {
		t.Fatalf("got %d duplicate alerts, want 1", len(dups))
	}
	if dups[0].Severity != models.SeverityHigh {
		t.Errorf("severity = %s, want high", dups[0].Severity)
	}
	if len(dups[0].Transactions) != 2 {
		t.Fatalf("duplicate alert references %d transactions, want 2", len(dups[0].Transactions))
	}
	if dups[0].Transactions[0] != txns[0] || dups[0].Transactions[1] != txns[2] {
		t.Error("duplicate alert should reference the two grocery rows, original first")
	}
	if len(alerts) != 1 {
		t.Errorf("got %d total alerts, want 1", len(alerts))
	}
}

func TestDuplicateNearbyDates(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-03-10", "Weekly cleaning service", -85.00),
		tx("2025-03-12", "Weekly cleaning service", -85.00),
	}
	dups := alertsOfType(d.Detect(txns, Options{Management: ModeSelf}), models.AlertDuplicate)
	if len(dups) != 1 {
		t.Fatalf("2 days apart, identical lines: got %d duplicate alerts, want 1", len(dups))
	}

	far := []*models.Transaction{
		tx("2025-03-10", "Weekly cleaning service", -85.00),
		tx("2025-03-20", "Weekly cleaning service", -85.00),
	}
	if got := alertsOfType(d.Detect(far, Options{Management: ModeSelf}), models.AlertDuplicate); len(got) != 0 {
		t.Errorf("10 days apart: got %d duplicate alerts, want 0", len(got))
	}
}

func TestDuplicateUnparseableDateDegrades(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("not a date", "Weekly cleaning service", -85.00),
		tx("2025-03-12", "Weekly cleaning service", -85.00),
	}
	// Different date strings, so not same-day; the day window cannot be
	// satisfied either. Must not panic and must not flag.
	if got := alertsOfType(d.Detect(txns, Options{Management: ModeSelf}), models.AlertDuplicate); len(got) != 0 {
		t.Errorf("got %d duplicate alerts, want 0", len(got))
	}
}

func TestOutlierRequiresThreeTransactions(t *testing.T) {
	d := newDetector()
	two := []*models.Transaction{
		tx("2025-01-01", "Personal care morning", -10),
		tx("2025-01-02", "Overnight respite package", -10000),
	}
	if got := alertsOfType(d.Detect(two, Options{Management: ModeSelf}), models.AlertUnusual); len(got) != 0 {
		t.Errorf("2 transactions: got %d unusual alerts, want 0", len(got))
	}
}

func TestOutlierDetection(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-01-01", "Personal care morning", -20),
		tx("2025-01-02", "Domestic laundry visit", -22),
		tx("2025-01-03", "Transport run to clinic", -21),
		tx("2025-01-04", "Podiatry appointment", -24),
		tx("2025-01-05", "Emergency overnight callout", -600),
	}
	unusual := alertsOfType(d.Detect(txns, Options{Management: ModeSelf}), models.AlertUnusual)
	if len(unusual) != 1 {
		t.Fatalf("got %d unusual alerts, want 1", len(unusual))
	}
	if unusual[0].Transactions[0].Description != "Emergency overnight callout" {
		t.Errorf("flagged %q, want the $600 line", unusual[0].Transactions[0].Description)
	}
	if unusual[0].Severity != models.SeverityMedium {
		t.Errorf("severity = %s, want medium", unusual[0].Severity)
	}
}

func TestOutlierFloorSuppressesSmallStatements(t *testing.T) {
	d := newDetector()
	// $45 is far outside this tiny statement's IQR bound but sits under
	// the $50 floor.
	txns := []*models.Transaction{
		tx("2025-01-01", "Personal care morning", -2),
		tx("2025-01-02", "Domestic laundry visit", -3),
		tx("2025-01-03", "Transport run to clinic", -2.5),
		tx("2025-01-04", "Meal preparation visit", -3.5),
		tx("2025-01-05", "Podiatry appointment", -45),
	}
	if got := alertsOfType(d.Detect(txns, Options{Management: ModeSelf}), models.AlertUnusual); len(got) != 0 {
		t.Errorf("got %d unusual alerts, want 0 (under $50 floor)", len(got))
	}
}

func TestFeeDriftThresholds(t *testing.T) {
	d := newDetector()

	tests := []struct {
		name     string
		second   float64
		want     int
		severity models.AlertSeverity
	}{
		{"9 percent change stays quiet", -109, 0, ""},
		{"12 percent change flags medium", -112, 1, models.SeverityMedium},
		{"100 percent change flags high", -200, 1, models.SeverityHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txns := []*models.Transaction{
				tx("2025-01-01", "Monthly nursing visit", -100),
				tx("2025-02-01", "Monthly nursing visit", tc.second),
			}
			changed := alertsOfType(d.Detect(txns, Options{Management: ModeSelf}), models.AlertChanged)
			if len(changed) != tc.want {
				t.Fatalf("got %d changed alerts, want %d", len(changed), tc.want)
			}
			if tc.want == 1 {
				if changed[0].Severity != tc.severity {
					t.Errorf("severity = %s, want %s", changed[0].Severity, tc.severity)
				}
				if len(changed[0].Transactions) != 2 {
					t.Errorf("alert references %d transactions, want the whole group", len(changed[0].Transactions))
				}
			}
		})
	}
}

func TestFeeDriftGroupSortedByDate(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-03-01", "Monthly nursing visit", -200),
		tx("2025-01-01", "Monthly nursing visit", -100),
		tx("2025-02-01", "Monthly nursing visit", -150),
	}
	changed := alertsOfType(d.Detect(txns, Options{Management: ModeSelf}), models.AlertChanged)
	if len(changed) != 1 {
		t.Fatalf("got %d changed alerts, want 1", len(changed))
	}
	dates := []string{}
	for _, tr := range changed[0].Transactions {
		dates = append(dates, tr.Date)
	}
	want := []string{"2025-01-01", "2025-02-01", "2025-03-01"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("group dates %v, want ascending %v", dates, want)
	}
}

func TestSelfManagedAggregateRule(t *testing.T) {
	d := newDetector()
	service := []*models.Transaction{
		tx("2025-01-02", "Personal care morning", -400),
		tx("2025-01-05", "Weekly cleaning visit", -300),
		tx("2025-01-09", "Transport run to clinic", -200),
		tx("2025-01-12", "Overnight respite stay", -100),
	}

	over := append(append([]*models.Transaction{}, service...),
		tx("2025-01-15", "Plan management fee", -150))
	alerts := alertsOfType(d.Detect(over, Options{Management: ModeSelf}), models.AlertManagementFee)
	if len(alerts) != 1 {
		t.Fatalf("15%% management: got %d management-fee alerts, want 1", len(alerts))
	}
	if alerts[0].Severity != models.SeverityHigh {
		t.Errorf("severity = %s, want high", alerts[0].Severity)
	}
	if !strings.Contains(alerts[0].Description, "15.0%") {
		t.Errorf("description %q should report the 15.0%% rate", alerts[0].Description)
	}
	if len(alerts[0].Transactions) != 1 {
		t.Errorf("aggregate alert references %d transactions, want the management lines", len(alerts[0].Transactions))
	}

	under := append(append([]*models.Transaction{}, service...),
		tx("2025-01-15", "Plan management fee", -90))
	if got := alertsOfType(d.Detect(under, Options{Management: ModeSelf}), models.AlertManagementFee); len(got) != 0 {
		t.Errorf("9%% management: got %d management-fee alerts, want 0", len(got))
	}
}

func TestSelfManagedIndividualLineWithoutAggregate(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-01-02", "Round the clock nursing package", -10000),
		tx("2025-01-15", "Plan management fee", -150),
	}
	// 1.5% rate: no aggregate alert, but the $150 line is over $100.
	alerts := alertsOfType(d.Detect(txns, Options{Management: ModeSelf}), models.AlertManagementFee)
	if len(alerts) != 1 {
		t.Fatalf("got %d management-fee alerts, want 1", len(alerts))
	}
	if alerts[0].Severity != models.SeverityMedium {
		t.Errorf("severity = %s, want medium", alerts[0].Severity)
	}
}

func TestProviderManagedMode(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-01-02", "Personal care morning", -200),
		tx("2025-01-05", "Weekly cleaning visit", -200),
		tx("2025-01-15", "Plan management fee", -250),
		tx("2025-01-16", "Admin travel recovery", -120),
		tx("2025-01-17", "Admin postage charge", -30),
	}
	alerts := alertsOfType(d.Detect(txns, Options{Management: ModeProvider}), models.AlertManagementFee)
	if len(alerts) != 2 {
		t.Fatalf("got %d management-fee alerts, want 2", len(alerts))
	}
	// $250 exceeds the $200 absolute limit; with a $200 average service
	// line the ratio rule catches the $120 but not the $30. No aggregate
	// alert in provider mode regardless of the overall rate.
	for _, a := range alerts {
		if a.Severity != models.SeverityMedium {
			t.Errorf("severity = %s, want medium", a.Severity)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-01-01", "Personal care morning", -20),
		tx("2025-01-02", "Domestic laundry visit", -22),
		tx("2025-01-03", "Transport run to clinic", -21),
		tx("2025-01-04", "Podiatry appointment", -24),
		tx("2025-01-05", "Emergency overnight callout", -600),
		tx("2025-01-06", "Admin fee", -80),
	}
	alerts := d.Detect(txns, Options{Management: ModeSelf})
	if len(alerts) < 2 {
		t.Fatalf("got %d alerts, want at least 2", len(alerts))
	}
	for i := 1; i < len(alerts); i++ {
		if models.SeverityRank(alerts[i-1].Severity) > models.SeverityRank(alerts[i].Severity) {
			t.Errorf("alerts out of severity order at %d: %s after %s", i, alerts[i].Severity, alerts[i-1].Severity)
		}
	}
	if alerts[0].Type != models.AlertManagementFee || alerts[0].Severity != models.SeverityHigh {
		t.Errorf("first alert = %s/%s, want management-fee/high", alerts[0].Type, alerts[0].Severity)
	}
}

func TestDetectIsIdempotent(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-01-15", "Grocery Store", -45.67),
		tx("2025-01-15", "Grocery Store", -45.67),
		tx("2025-01-01", "Monthly nursing visit", -100),
		tx("2025-02-01", "Monthly nursing visit", -200),
		tx("2025-01-06", "Admin fee", -80),
	}

	first := d.Detect(txns, Options{Management: ModeSelf})
	second := d.Detect(txns, Options{Management: ModeSelf})
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated detection over the same transactions must yield identical alerts")
	}
}

func TestAlertsAlwaysReferenceTransactions(t *testing.T) {
	d := newDetector()
	txns := []*models.Transaction{
		tx("2025-01-15", "Grocery Store", -45.67),
		tx("2025-01-15", "Grocery Store", -45.67),
		tx("2025-01-01", "Monthly nursing visit", -100),
		tx("2025-02-01", "Monthly nursing visit", -200),
		tx("2025-01-06", "Admin fee", -500),
		tx("2025-01-07", "Care visit", -30),
	}
	for _, mode := range []ManagementMode{ModeSelf, ModeProvider} {
		for _, a := range d.Detect(txns, Options{Management: mode}) {
			if len(a.Transactions) == 0 {
				t.Errorf("%s alert has no transactions", a.Type)
			}
		}
	}
}
