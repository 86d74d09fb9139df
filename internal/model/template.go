package model

// TemplateRow is one row of the external test-field table consumed by the
// template matching strategy.
type TemplateRow struct {
	TestName       string   `json:"test_name"`
	Specimen       string   `json:"specimen"`
	Units          string   `json:"units"`
	ReferenceValue string   `json:"reference_value"`
	Category       Category `json:"category"`
	Method         string   `json:"method"`
}
