package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	f := NewFormatter("en", "USD")

	assert.Equal(t, "USD 1,234.50", f.Money(1234.5))
	assert.Equal(t, "USD 0.00", f.Money(0))
	assert.Equal(t, "USD -12.35", f.Money(-12.3450001))
}

func TestPercent(t *testing.T) {
	f := NewFormatter("en", "USD")

	assert.Equal(t, "+10.0%", f.Percent(10))
	assert.Equal(t, "-4.3%", f.Percent(-4.25))
	assert.Equal(t, "0.0%", f.Percent(0))
}

func TestNewFormatter_BadLocaleFallsBack(t *testing.T) {
	f := NewFormatter("not-a-locale", "EUR")

	assert.Equal(t, "EUR 1.00", f.Money(1))
}
