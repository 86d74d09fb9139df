package report

import (
	"regexp"
	"strings"
	"time"

	"github.com/sells-group/labreport-cli/internal/model"
)

// Demographic field patterns, ordered most to least specific. The first
// pattern that matches wins; later patterns for that field are never tried.
var (
	patientNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?im)patient\s*name\s*[:\-]?\s*([A-Za-z .]+?)\s*$`),
		regexp.MustCompile(`(?im)name\s*of\s*patient\s*[:\-]?\s*([A-Za-z .]+?)\s*$`),
		regexp.MustCompile(`(?im)\bname\s*[:\-]?\s*([A-Za-z .]+?)\s*$`),
	}
	ageSexRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)age\s*/\s*sex\s*[:\-]?\s*(\d+)[\sYy]*[/\s]*([MF])`),
		regexp.MustCompile(`(?i)age/sex\s*[:\-]?\s*(\d+)\s*(?:y|yr|yrs|years?)\s*[/|]\s*([MF])`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:y|yr|yrs|years?)\s*[/|]\s*([MF])`),
		regexp.MustCompile(`(?is)age\s*[:\-]?\s*(\d+)\s*(?:y|yr|yrs|years?).*?sex\s*[:\-]?\s*([MF])`),
	}
	patientIDRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)patient\s*id\s*[:\-]?\s*([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)\bid\s*[:\-]?\s*([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)registration\s*no\s*[:\-]?\s*([A-Za-z0-9]+)`),
	}
	sidNoRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)sid\s*no?\s*[:\-]?\s*([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)hospital\s*id\s*[:\-]?\s*([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)unique\s*health\s*id\s*[:\-]?\s*([A-Za-z0-9]+)`),
	}
	collectedDateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)collected\s*(?:on|date)\s*[:\-]?\s*([\d/\-\s:]+)`),
		regexp.MustCompile(`(?i)collection\s*date\s*[:\-]?\s*([\d/\-\s:]+)`),
		regexp.MustCompile(`(?i)sample\s*date\s*[:\-]?\s*([\d/\-\s:]+)`),
	}
	reportedDateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)reported\s*(?:on|date)\s*[:\-]?\s*([\d/\-\s:]+)`),
		regexp.MustCompile(`(?i)report\s*date\s*[:\-]?\s*([\d/\-\s:]+)`),
		regexp.MustCompile(`(?i)date\s*of\s*report\s*[:\-]?\s*([\d/\-\s:]+)`),
	}
	refByRes = []*regexp.Regexp{
		regexp.MustCompile(`(?im)ref(?:erred)?\s*by\s*[:\-]?\s*([A-Za-z .]+?)\s*$`),
		regexp.MustCompile(`(?im)doctor\s*[:\-]?\s*([A-Za-z .]+?)\s*$`),
	}

	clockTimeRe = regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})*`)
)

// dateLayouts are the accepted input date formats, day-first with 2- or
// 4-digit years, slash or dash separated.
var dateLayouts = []string{"02/01/2006", "02-01-2006", "02/01/06", "02-01-06"}

// canonicalDateLayout is the single output form for parseable dates.
const canonicalDateLayout = "02/01/2006"

// PatientInfoExtractor extracts demographic fields from the full document
// text via ordered regex fallbacks. Stateless and safe for concurrent use.
type PatientInfoExtractor struct{}

// NewPatientInfoExtractor returns a PatientInfoExtractor.
func NewPatientInfoExtractor() *PatientInfoExtractor {
	return &PatientInfoExtractor{}
}

// Extract returns the patient information found in fullText. Fields with no
// matching pattern keep the NotProvided sentinel.
func (e *PatientInfoExtractor) Extract(fullText string) model.PatientInformation {
	info := model.NewPatientInformation()

	if v := firstMatch(patientNameRes, fullText); v != "" {
		info.PatientName = cleanTextField(v)
	}
	if v := extractAgeSex(fullText); v != "" {
		info.AgeSex = v
	}
	if v := firstMatch(patientIDRes, fullText); v != "" {
		info.PatientID = cleanTextField(v)
	}
	if v := firstMatch(sidNoRes, fullText); v != "" {
		info.SIDNo = cleanTextField(v)
	}
	if v := firstMatch(collectedDateRes, fullText); v != "" {
		info.CollectedDate = normalizeDate(v)
	}
	if v := firstMatch(reportedDateRes, fullText); v != "" {
		info.ReportedDate = normalizeDate(v)
	}
	if v := firstMatch(refByRes, fullText); v != "" {
		info.RefBy = cleanTextField(v)
	}
	return info
}

// firstMatch returns the first capture of the first pattern that matches.
func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if len(m) > 1 {
				return strings.TrimSpace(m[1])
			}
			return strings.TrimSpace(m[0])
		}
	}
	return ""
}

// extractAgeSex extracts age and sex jointly from a single match and
// normalizes to "<age> Y <SEX>" with sex as one uppercase letter.
func extractAgeSex(text string) string {
	for _, re := range ageSexRes {
		m := re.FindStringSubmatch(text)
		if m == nil || len(m) < 3 {
			continue
		}
		age := strings.TrimSpace(m[1])
		sex := strings.ToUpper(strings.TrimSpace(m[2]))
		if sex != "" {
			sex = sex[:1]
		}
		return age + " Y " + sex
	}
	return ""
}

// cleanTextField trims and keeps only the first line of a captured field.
func cleanTextField(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(first)
}

// normalizeDate cleans a raw date capture and re-emits it as DD/MM/YYYY. An
// unparseable date is kept in its cleaned form verbatim.
func normalizeDate(raw string) string {
	cleaned := cleanDateField(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(canonicalDateLayout)
		}
	}
	return cleaned
}

// cleanDateField strips embedded clock times and trailing stray slash/space
// characters from a raw date capture.
func cleanDateField(raw string) string {
	cleaned := strings.TrimSpace(clockTimeRe.ReplaceAllString(raw, ""))
	cleaned = strings.TrimSuffix(cleaned, "/")
	return cleanTextField(strings.TrimSpace(cleaned))
}
