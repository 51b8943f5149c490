package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_PreservesHeadingsAndBullets(t *testing.T) {
	input := "# Jane Doe\n  ## Skills\n- Python\n  - SQL\n* Docker"
	result := CleanText(input)

	assert.Contains(t, result, "# Jane Doe")
	assert.Contains(t, result, "## Skills")
	assert.Contains(t, result, "- Python")
	assert.Contains(t, result, "  - SQL")
	assert.Contains(t, result, "* Docker")
}

func TestCleanText_NormalizesWhitespace(t *testing.T) {
	result := CleanText("Senior    Data     Engineer")
	assert.Equal(t, "Senior Data Engineer", result)
}

func TestCleanText_NormalizesLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3")
	assert.NotContains(t, result, "\r")
	assert.Equal(t, "Line 1\nLine 2\nLine 3", result)
}

func TestCleanText_RemovesExcessiveBlankLines(t *testing.T) {
	result := CleanText("Experience\n\n\n\n\nEducation")
	assert.Equal(t, "Experience\n\nEducation", result)
}

func TestCleanText_TrimsTrailingLineWhitespace(t *testing.T) {
	result := CleanText("Skills: Python   \t\nCerts: AWS SAA")
	assert.Equal(t, "Skills: Python\nCerts: AWS SAA", result)
}

func TestCleanText_EmptyAndWhitespaceOnly(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n \t \n  "))
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Profile   summary\n\n\n- Item   one\n"
	assert.Equal(t, CleanText(input), CleanText(input))
}
