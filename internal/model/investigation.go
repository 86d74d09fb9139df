package model

// Category is a fixed lab investigation category. The value is the label
// printed on reports and matched against block text.
type Category string

const (
	CategoryHaematology       Category = "haematology"
	CategoryBiochemistry      Category = "biochemistry"
	CategoryMicrobiology      Category = "microbiology"
	CategorySerology          Category = "serology"
	CategoryImmunology        Category = "immunology"
	CategoryClinicalPathology Category = "clinical pathology"
)

// AllCategories returns every category in fixed priority order. Category
// detection iterates this slice, so tie-breaks between labels appearing in
// the same block are deterministic.
func AllCategories() []Category {
	return []Category{
		CategoryHaematology,
		CategoryBiochemistry,
		CategoryMicrobiology,
		CategorySerology,
		CategoryImmunology,
		CategoryClinicalPathology,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, v := range AllCategories() {
		if v == c {
			return true
		}
	}
	return false
}

// Result flags.
const (
	FlagHigh = "H"
	FlagLow  = "L"
)

// ParsedValue holds the parsed result fields of a single test. Value is nil
// when no numeric value was found; string fields are empty when absent.
type ParsedValue struct {
	Value          *float64 `json:"value"`
	Units          string   `json:"units,omitempty"`
	ReferenceRange string   `json:"reference_range,omitempty"`
	Flag           string   `json:"flag,omitempty"`
	Specimen       string   `json:"specimen,omitempty"`
	Method         string   `json:"method,omitempty"`
}

// Float64 returns a pointer to v, for building ParsedValue literals.
func Float64(v float64) *float64 { return &v }

// Investigation is one test result candidate. All three extraction
// strategies emit this shape; only the merge engine writes the final list.
type Investigation struct {
	Category Category    `json:"investigation"`
	TestName string      `json:"test_name"`
	Result   ParsedValue `json:"results"`
}

// ExtractionResult is the terminal artifact of one extraction pass.
// Immutable once constructed.
type ExtractionResult struct {
	PatientInformation PatientInformation `json:"patient_information"`
	Investigations     []Investigation    `json:"investigations"`
	Source             string             `json:"source"`
	Warnings           []string           `json:"warnings,omitempty"`
}
