package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.co",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"user@",
		"user@domain",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidUUID("0198c0ff-3b4a-7def-8abc-0123456789ab"))
	assert.True(t, IsValidUUID("6fa459ea-ee8a-3ca4-894e-db77e160355e"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("0198c0ff3b4a7def8abc0123456789ab"))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	d, ok := IsValidDate("2025-06-15")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())

	_, ok = IsValidDate("15-06-2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-40")
	assert.False(t, ok)
}
