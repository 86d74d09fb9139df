package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableParse_PipeDelimited(t *testing.T) {
	p := NewTableLineParser()

	inv, ok := p.Parse("Serum | Glucose (Fasting) | 95 | H | mg/dL | 70-110")

	require.True(t, ok)
	assert.Equal(t, "Glucose (Fasting)", inv.TestName)
	require.NotNil(t, inv.Result.Value)
	assert.Equal(t, 95.0, *inv.Result.Value)
	assert.Equal(t, "H", inv.Result.Flag)
	assert.Equal(t, "mg/dL", inv.Result.Units)
	assert.Equal(t, "70 - 110", inv.Result.ReferenceRange)
	assert.Equal(t, "Serum", inv.Result.Specimen)
	assert.Equal(t, "Fasting", inv.Result.Method)
	assert.Empty(t, inv.Category)
}

func TestTableParse_PlainColumns(t *testing.T) {
	p := NewTableLineParser()

	inv, ok := p.Parse("Haemoglobin 13.5 g/dL 13.0 - 17.0")

	require.True(t, ok)
	assert.Equal(t, "Haemoglobin", inv.TestName)
	assert.Equal(t, 13.5, *inv.Result.Value)
	assert.Equal(t, "g/dL", inv.Result.Units)
	assert.Equal(t, "13.0 - 17.0", inv.Result.ReferenceRange)
	assert.Equal(t, "", inv.Result.Flag)
}

func TestTableParse_SpecimenWithoutPipe(t *testing.T) {
	p := NewTableLineParser()

	inv, ok := p.Parse("Serum Creatinine 1.2 mg/dL 0.6 - 1.2")

	require.True(t, ok)
	assert.Equal(t, "Serum", inv.Result.Specimen)
	assert.Equal(t, "Creatinine", inv.TestName)
	assert.Equal(t, 1.2, *inv.Result.Value)
	assert.Equal(t, "mg/dL", inv.Result.Units)
}

func TestTableParse_SpecimenPrefixWordBounded(t *testing.T) {
	p := NewTableLineParser()

	// "Serums" is not a specimen marker; the whole token stays in the name.
	inv, ok := p.Parse("Serumside Panel 42 U/L")

	require.True(t, ok)
	assert.Equal(t, "", inv.Result.Specimen)
	assert.Equal(t, "Serumside Panel", inv.TestName)
}

func TestTableParse_GenderPrefixStripped(t *testing.T) {
	p := NewTableLineParser()

	inv, ok := p.Parse("Haemoglobin | 13.5 | g/dL | Male: 13.0 to 17.0")

	require.True(t, ok)
	assert.Equal(t, "13.0 - 17.0", inv.Result.ReferenceRange)
}

func TestTableParse_SkipsHeaders(t *testing.T) {
	p := NewTableLineParser()

	_, ok := p.Parse("Specimen | Test Name | Result | Units | Reference")
	assert.False(t, ok)

	_, ok = p.Parse("Test Name Result Units")
	assert.False(t, ok)
}

func TestTableParse_SkipsSeparators(t *testing.T) {
	p := NewTableLineParser()

	for _, line := range []string{"-----", "=====", "___", "||| --- |||", "- - - -", ""} {
		_, ok := p.Parse(line)
		assert.False(t, ok, "line %q should be skipped", line)
	}
}

func TestTableParse_ShortNameRejected(t *testing.T) {
	p := NewTableLineParser()

	_, ok := p.Parse("x 5")
	assert.False(t, ok)
}

func TestTableParse_NoValueRejected(t *testing.T) {
	p := NewTableLineParser()

	_, ok := p.Parse("Culture report: no growth")
	assert.False(t, ok)
}
