// Package synth generates deterministic, obviously fake clinical tables:
// patients, a drug catalog and prescriptions linking the two.
package synth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/deepceutix/datagen/internal/table"
)

var (
	conditions = []string{
		"Hypertension", "Type 2 Diabetes", "Asthma", "Migraine", "Osteoarthritis",
		"Major Depressive Disorder", "Hyperlipidemia", "GERD", "Hypothyroidism", "Pneumonia",
	}
	drugClasses = []string{"antibiotic", "analgesic", "antihypertensive", "antidiabetic", "antidepressant"}
	doseForms   = []string{"tablet", "capsule", "liquid", "injection", "suspension"}
	routes      = []string{"oral", "IV", "topical", "inhalation"}
	frequencies = []string{"Daily", "BID", "TID", "QID", "Weekly"}
	drugSuffix  = []string{"mab", "pril", "olol", "statin", "cillin", "azole", "oxetine", "formin"}
)

var (
	rangeStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Generator produces reproducible tables for a seed.
type Generator struct {
	f *gofakeit.Faker
}

// New returns a generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{f: gofakeit.New(uint64(seed))}
}

// PatientID formats the n-th patient identifier.
func PatientID(n int) string { return fmt.Sprintf("P-%04d", n) }

// DrugID formats the n-th drug identifier (1-based).
func DrugID(n int) string { return fmt.Sprintf("DR-%03d", n) }

// PrescriptionID formats the n-th prescription identifier.
func PrescriptionID(n int) string { return fmt.Sprintf("RX-%05d", n) }

// Patients returns n demographic rows.
func (g *Generator) Patients(n int) *table.Table {
	t := table.New("patient_id", "first_name", "last_name", "age", "gender", "height_cm", "weight_kg", "diagnosis", "insurance_provider")
	for i := range n {
		gender := "F"
		if g.f.Bool() {
			gender = "M"
		}
		t.Append(
			PatientID(i),
			g.f.FirstName(),
			g.f.LastName(),
			strconv.Itoa(g.f.IntRange(18, 69)),
			gender,
			strconv.Itoa(g.f.IntRange(145, 195)),
			strconv.Itoa(g.f.IntRange(45, 110)),
			g.f.RandomString(conditions),
			g.f.Company(),
		)
	}
	return t
}

// Drugs returns an n-row drug catalog.
func (g *Generator) Drugs(n int) *table.Table {
	t := table.New("drug_id", "name", "dose_form", "strength_mg", "route", "therapeutic_class", "indication")
	for i := range n {
		t.Append(
			DrugID(i+1),
			g.drugName(),
			g.f.RandomString(doseForms),
			table.FormatFloat(g.f.Float64Range(5, 500)),
			g.f.RandomString(routes),
			g.f.RandomString(drugClasses),
			g.f.RandomString(conditions),
		)
	}
	return t
}

// Prescriptions links random patients to random drugs. patients and drugs are
// the row counts of the tables the IDs should refer to.
func (g *Generator) Prescriptions(n, patients, drugs int) *table.Table {
	t := table.New("prescription_id", "patient_id", "drug_id", "start_date", "end_date", "dose_strength", "frequency", "route", "prescriber")
	for i := range n {
		start := g.f.DateRange(rangeStart, rangeEnd).UTC().Truncate(24 * time.Hour)
		end := start.AddDate(0, 0, g.f.IntRange(0, 365))
		t.Append(
			PrescriptionID(i),
			PatientID(g.f.IntRange(0, max(patients-1, 0))),
			DrugID(g.f.IntRange(1, max(drugs, 1))),
			start.Format(time.DateOnly),
			end.Format(time.DateOnly),
			strconv.Itoa(g.f.IntRange(50, 299)),
			g.f.RandomString(frequencies),
			g.f.RandomString(routes[:3]),
			g.f.Name(),
		)
	}
	return t
}

func (g *Generator) drugName() string {
	stem := g.f.Word()
	if len(stem) > 0 {
		stem = strings.ToUpper(stem[:1]) + stem[1:]
	}
	return stem + g.f.RandomString(drugSuffix)
}
