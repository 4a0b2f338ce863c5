package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmountUSD(t *testing.T) {
	assert.Equal(t, "$267.50", FormatAmount(267.5, "USD"))
}

func TestFormatAmountUSDGrouping(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatAmount(1234.5, "USD"))
}

func TestFormatAmountPLN(t *testing.T) {
	assert.Equal(t, "435,00 zł", FormatAmount(435.0, "PLN"))
}

func TestFormatAmountEUR(t *testing.T) {
	assert.Equal(t, "267,50 €", FormatAmount(267.5, "EUR"))
}

func TestFormatAmountAlwaysTwoDecimals(t *testing.T) {
	assert.Equal(t, "$100.00", FormatAmount(100, "USD"))
	assert.Equal(t, "$0.10", FormatAmount(0.1, "USD"))
}

// Unknown currencies have no locale entry and fall back to an ISO-code suffix
func TestFormatAmountUnknownCurrency(t *testing.T) {
	assert.Equal(t, "99.99 GBP", FormatAmount(99.99, "GBP"))
}
