package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PestPro-App/internal/domain/model"
)

func TestParseZip(t *testing.T) {
	n, err := ParseZip("10001")
	require.NoError(t, err)
	assert.Equal(t, 10001, n)

	n, err = ParseZip("  60601 ")
	require.NoError(t, err)
	assert.Equal(t, 60601, n)

	t.Run("先頭のゼロは失われる", func(t *testing.T) {
		n, err := ParseZip("00501")
		require.NoError(t, err)
		assert.Equal(t, 501, n)
		assert.True(t, HasLeadingZero("00501"))
		assert.False(t, HasLeadingZero("10001"))
		assert.False(t, HasLeadingZero("0"))
	})

	t.Run("数値でない入力はエラー", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "abc", "10001-1234", "1e4"} {
			_, err := ParseZip(raw)
			assert.ErrorIs(t, err, ErrInvalidZip, "raw=%q", raw)
		}
	})
}

func TestLookupZip(t *testing.T) {
	entries := []model.ZipEntry{
		{Zip: 10001, CountyName: "New York", StateName: "New York"},
		{Zip: 501, CountyName: "Suffolk", StateName: "New York"},
		{Zip: 10001, CountyName: "Duplicate", StateName: "Nowhere"},
	}

	e, ok := LookupZip(entries, 10001)
	require.True(t, ok)
	assert.Equal(t, "New York", e.CountyName, "最初の一致を返す")

	e, ok = LookupZip(entries, 501)
	require.True(t, ok)
	assert.Equal(t, "Suffolk", e.CountyName)

	_, ok = LookupZip(entries, 12345)
	assert.False(t, ok)

	_, ok = LookupZip(nil, 10001)
	assert.False(t, ok)
}
