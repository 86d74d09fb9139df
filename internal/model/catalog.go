package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// TestNameEntry maps a canonical test field name to its keyword synonyms
// and owning category. Entries are immutable after catalog construction.
type TestNameEntry struct {
	FieldName string
	Keywords  []string
	Section   Category
}

// Catalog is an indexed, read-only collection of test name entries. A single
// Catalog may be shared by any number of concurrent extraction calls.
type Catalog struct {
	Entries []TestNameEntry

	byNormalized map[string]string // normalized name/keyword → canonical field name
	bySection    map[Category][]TestNameEntry
}

// NewCatalog builds a Catalog with normalized lookups. Returns an error when
// entries is empty: an extractor without any known tests is a configuration
// error, not a data-quality one.
func NewCatalog(entries []TestNameEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, eris.New("catalog: no test name entries")
	}

	c := &Catalog{
		Entries:      entries,
		byNormalized: make(map[string]string),
		bySection:    make(map[Category][]TestNameEntry),
	}
	for _, e := range entries {
		if key := NormalizeTestName(e.FieldName); key != "" {
			if _, ok := c.byNormalized[key]; !ok {
				c.byNormalized[key] = e.FieldName
			}
		}
		for _, kw := range e.Keywords {
			if key := NormalizeTestName(kw); key != "" {
				if _, ok := c.byNormalized[key]; !ok {
					c.byNormalized[key] = e.FieldName
				}
			}
		}
		c.bySection[e.Section] = append(c.bySection[e.Section], e)
	}
	return c, nil
}

// CanonicalName resolves name to its canonical field name by exact match on
// the normalized form of every field name and keyword. No fuzzy matching:
// an unresolvable name is returned verbatim. Resolution is idempotent.
func (c *Catalog) CanonicalName(name string) string {
	if canonical, ok := c.byNormalized[NormalizeTestName(name)]; ok {
		return canonical
	}
	return name
}

// BySection returns the entries owned by the given category.
func (c *Catalog) BySection(section Category) []TestNameEntry {
	return c.bySection[section]
}

// NormalizeTestName strips all non-alphanumeric characters and lowercases,
// the comparison form used for canonical resolution.
func NormalizeTestName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuiltinCatalog returns the compiled-in test name entries. Loaded once at
// startup and never mutated.
func BuiltinCatalog() []TestNameEntry {
	return []TestNameEntry{
		// Haematology
		{FieldName: "Haemoglobin", Keywords: []string{"haemoglobin", "hemoglobin", "hb", "hgb"}, Section: CategoryHaematology},
		{FieldName: "Total Leucocyte Count", Keywords: []string{"total leucocyte count", "total wbc count", "tlc", "wbc count", "white blood cell count"}, Section: CategoryHaematology},
		{FieldName: "RBC Count", Keywords: []string{"rbc count", "total rbc count", "red blood cell count", "erythrocyte count"}, Section: CategoryHaematology},
		{FieldName: "Platelet Count", Keywords: []string{"platelet count", "platelets", "plt"}, Section: CategoryHaematology},
		{FieldName: "Packed Cell Volume", Keywords: []string{"packed cell volume", "pcv", "haematocrit", "hematocrit", "hct"}, Section: CategoryHaematology},
		{FieldName: "MCV", Keywords: []string{"mcv", "mean corpuscular volume"}, Section: CategoryHaematology},
		{FieldName: "MCH", Keywords: []string{"mch", "mean corpuscular haemoglobin"}, Section: CategoryHaematology},
		{FieldName: "MCHC", Keywords: []string{"mchc", "mean corpuscular haemoglobin concentration"}, Section: CategoryHaematology},
		{FieldName: "ESR", Keywords: []string{"esr", "erythrocyte sedimentation rate"}, Section: CategoryHaematology},
		{FieldName: "Neutrophils", Keywords: []string{"neutrophils", "polymorphs"}, Section: CategoryHaematology},
		{FieldName: "Lymphocytes", Keywords: []string{"lymphocytes"}, Section: CategoryHaematology},
		{FieldName: "Eosinophils", Keywords: []string{"eosinophils"}, Section: CategoryHaematology},
		{FieldName: "Monocytes", Keywords: []string{"monocytes"}, Section: CategoryHaematology},
		{FieldName: "Basophils", Keywords: []string{"basophils"}, Section: CategoryHaematology},

		// Biochemistry
		{FieldName: "Glucose (Fasting)", Keywords: []string{"glucose fasting", "fasting blood sugar", "fbs", "glucose (fasting)"}, Section: CategoryBiochemistry},
		{FieldName: "Glucose (Post Prandial)", Keywords: []string{"glucose post prandial", "post prandial blood sugar", "ppbs", "glucose (pp)"}, Section: CategoryBiochemistry},
		{FieldName: "Blood Urea", Keywords: []string{"blood urea", "urea"}, Section: CategoryBiochemistry},
		{FieldName: "Serum Creatinine", Keywords: []string{"serum creatinine", "creatinine"}, Section: CategoryBiochemistry},
		{FieldName: "Uric Acid", Keywords: []string{"uric acid", "serum uric acid"}, Section: CategoryBiochemistry},
		{FieldName: "Total Cholesterol", Keywords: []string{"total cholesterol", "cholesterol"}, Section: CategoryBiochemistry},
		{FieldName: "Triglycerides", Keywords: []string{"triglycerides", "tg"}, Section: CategoryBiochemistry},
		{FieldName: "HDL Cholesterol", Keywords: []string{"hdl cholesterol", "hdl"}, Section: CategoryBiochemistry},
		{FieldName: "LDL Cholesterol", Keywords: []string{"ldl cholesterol", "ldl"}, Section: CategoryBiochemistry},
		{FieldName: "SGPT", Keywords: []string{"sgpt", "alt", "alanine aminotransferase"}, Section: CategoryBiochemistry},
		{FieldName: "SGOT", Keywords: []string{"sgot", "ast", "aspartate aminotransferase"}, Section: CategoryBiochemistry},
		{FieldName: "Alkaline Phosphatase", Keywords: []string{"alkaline phosphatase", "alp"}, Section: CategoryBiochemistry},
		{FieldName: "Total Bilirubin", Keywords: []string{"total bilirubin", "bilirubin total"}, Section: CategoryBiochemistry},
		{FieldName: "Total Protein", Keywords: []string{"total protein", "serum protein"}, Section: CategoryBiochemistry},
		{FieldName: "Albumin", Keywords: []string{"albumin", "serum albumin"}, Section: CategoryBiochemistry},
		{FieldName: "Sodium", Keywords: []string{"sodium", "serum sodium", "na+"}, Section: CategoryBiochemistry},
		{FieldName: "Potassium", Keywords: []string{"potassium", "serum potassium", "k+"}, Section: CategoryBiochemistry},
		{FieldName: "Calcium", Keywords: []string{"calcium", "serum calcium"}, Section: CategoryBiochemistry},

		// Serology
		{FieldName: "CRP", Keywords: []string{"crp", "c-reactive protein", "c reactive protein"}, Section: CategorySerology},
		{FieldName: "RA Factor", Keywords: []string{"ra factor", "rheumatoid factor"}, Section: CategorySerology},
		{FieldName: "ASO Titre", Keywords: []string{"aso titre", "aso", "antistreptolysin o"}, Section: CategorySerology},

		// Immunology
		{FieldName: "TSH", Keywords: []string{"tsh", "thyroid stimulating hormone"}, Section: CategoryImmunology},
		{FieldName: "T3", Keywords: []string{"t3", "triiodothyronine"}, Section: CategoryImmunology},
		{FieldName: "T4", Keywords: []string{"t4", "thyroxine"}, Section: CategoryImmunology},
		{FieldName: "Vitamin D", Keywords: []string{"vitamin d", "25-oh vitamin d", "25 hydroxy vitamin d"}, Section: CategoryImmunology},
		{FieldName: "Vitamin B12", Keywords: []string{"vitamin b12", "cyanocobalamin"}, Section: CategoryImmunology},

		// Microbiology
		{FieldName: "Widal Titre O", Keywords: []string{"widal titre o", "s typhi o"}, Section: CategoryMicrobiology},
		{FieldName: "Widal Titre H", Keywords: []string{"widal titre h", "s typhi h"}, Section: CategoryMicrobiology},

		// Clinical pathology
		{FieldName: "Urine pH", Keywords: []string{"urine ph", "ph"}, Section: CategoryClinicalPathology},
		{FieldName: "Urine Specific Gravity", Keywords: []string{"urine specific gravity", "specific gravity"}, Section: CategoryClinicalPathology},
		{FieldName: "Urine Sugar", Keywords: []string{"urine sugar", "urine glucose"}, Section: CategoryClinicalPathology},
	}
}
