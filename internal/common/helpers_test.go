package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStroopsToXLM(t *testing.T) {
	assert.Equal(t, "0.0000001", StroopsToXLM(1))
	assert.Equal(t, "1.0000000", StroopsToXLM(10000000))
	assert.Equal(t, "2.4981836", StroopsToXLM(24981836))
	assert.Equal(t, "0.0000000", StroopsToXLM(0))
}

func TestXLMToStroops(t *testing.T) {
	n, err := XLMToStroops("1")
	require.NoError(t, err)
	assert.Equal(t, uint64(10000000), n)

	n, err = XLMToStroops("0.0000001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	n, err = XLMToStroops("2.4981836")
	require.NoError(t, err)
	assert.Equal(t, uint64(24981836), n)

	_, err = XLMToStroops("")
	assert.Error(t, err)

	_, err = XLMToStroops("1.2.3")
	assert.Error(t, err)
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "123.45", FormatBalance("123.4567890", 2))
	assert.Equal(t, "123.40", FormatBalance("123.4", 2))
	assert.Equal(t, "0.00", FormatBalance("0", 2))
	assert.Equal(t, "0.00", FormatBalance("", 2))
	assert.Equal(t, "123", FormatBalance("123.456", 0))
}

func TestCompareXLMAmounts(t *testing.T) {
	c, err := CompareXLMAmounts("1.5", "1.5000000")
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = CompareXLMAmounts("0.1", "0.2")
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = CompareXLMAmounts("10", "9.9999999")
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}
