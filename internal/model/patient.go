package model

// NotProvided is the sentinel for demographic fields with no matching
// pattern. Fields are never omitted from the shape.
const NotProvided = "Not Provided"

// PatientInformation holds the demographic fields extracted from a report.
type PatientInformation struct {
	PatientName   string `json:"patient_name"`
	AgeSex        string `json:"age_sex"`
	PatientID     string `json:"patient_id"`
	SIDNo         string `json:"sid_no"`
	CollectedDate string `json:"collected_date"`
	ReportedDate  string `json:"reported_date"`
	RefBy         string `json:"ref_by"`
}

// NewPatientInformation returns a PatientInformation with every field set
// to the NotProvided sentinel.
func NewPatientInformation() PatientInformation {
	return PatientInformation{
		PatientName:   NotProvided,
		AgeSex:        NotProvided,
		PatientID:     NotProvided,
		SIDNo:         NotProvided,
		CollectedDate: NotProvided,
		ReportedDate:  NotProvided,
		RefBy:         NotProvided,
	}
}
