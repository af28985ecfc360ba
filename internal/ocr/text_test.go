package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	in := "Receipt\r\n----------\r\nCoffee\t\t3.50\r\n\r\n\r\n\r\nThanks   for visiting  \r\n"
	out := Normalize(in)

	assert.Equal(t, "Receipt\n\nCoffee 3.50\n\nThanks for visiting", out)
}

func TestNormalizeLayoutKeepsColumns(t *testing.T) {
	in := "Date          Amount\n2024-01-03    35.00   \n________\n"
	out := NormalizeLayout(in)

	assert.Contains(t, out, "Date          Amount")
	assert.Contains(t, out, "2024-01-03    35.00")
	assert.NotContains(t, out, "___")
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", NormalizeLayout(""))
}
