package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/labreport-cli/internal/model"
)

func TestClassifyBlocks_DirectLabel(t *testing.T) {
	blocks := []Block{
		{Lines: []string{"HAEMATOLOGY REPORT"}},
		{Lines: []string{"BIOCHEMISTRY"}},
	}

	out := ClassifyBlocks(blocks)

	require.Len(t, out, 2)
	assert.True(t, out[0].Classified)
	assert.Equal(t, model.CategoryHaematology, out[0].Category)
	assert.Equal(t, model.CategoryBiochemistry, out[1].Category)
}

func TestClassifyBlocks_CarryForward(t *testing.T) {
	blocks := []Block{
		{Lines: []string{"BIOCHEMISTRY"}},
		{Lines: []string{"Glucose 95 mg/dL"}},
		{Lines: []string{"Urea 24 mg/dL"}},
	}

	out := ClassifyBlocks(blocks)

	require.Len(t, out, 3)
	for _, cb := range out {
		assert.True(t, cb.Classified)
		assert.Equal(t, model.CategoryBiochemistry, cb.Category)
	}
}

func TestClassifyBlocks_LeadingUnclassified(t *testing.T) {
	blocks := []Block{
		{Lines: []string{"City Diagnostic Centre"}},
		{Lines: []string{"SEROLOGY"}},
	}

	out := ClassifyBlocks(blocks)

	require.Len(t, out, 2)
	assert.False(t, out[0].Classified)
	assert.True(t, out[1].Classified)
	assert.Equal(t, model.CategorySerology, out[1].Category)
}

func TestClassifyBlocks_PriorityOrder(t *testing.T) {
	// Both labels in one block resolve to the earlier category in the
	// fixed order.
	blocks := []Block{
		{Lines: []string{"SEROLOGY and BIOCHEMISTRY combined panel"}},
	}

	out := ClassifyBlocks(blocks)

	require.Len(t, out, 1)
	assert.Equal(t, model.CategoryBiochemistry, out[0].Category)
}

func TestDetectCategory_Suffixes(t *testing.T) {
	cat, ok := detectCategory("clinical pathology report")
	assert.True(t, ok)
	assert.Equal(t, model.CategoryClinicalPathology, cat)

	cat, ok = detectCategory("MICROBIOLOGY: culture and sensitivity")
	assert.True(t, ok)
	assert.Equal(t, model.CategoryMicrobiology, cat)

	_, ok = detectCategory("Haemoglobin 13.5 g/dL")
	assert.False(t, ok)
}
