package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(1820, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(91), m.Numerator())
		assert.Equal(t, int64(5), m.Denominator())
		assert.Equal(t, "18.20", m.String())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, -1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := NewMoney(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestParseMoney(t *testing.T) {
	t.Run("decimal string", func(t *testing.T) {
		m, err := ParseMoney("18.2")
		require.NoError(t, err)
		assert.Equal(t, "18.20", m.String())
		assert.InDelta(t, 18.2, m.Float64(), 0.0001)
	})

	t.Run("fraction string", func(t *testing.T) {
		m, err := ParseMoney("1820/100")
		require.NoError(t, err)
		assert.Equal(t, "18.20", m.String())
	})

	t.Run("empty string is zero", func(t *testing.T) {
		m, err := ParseMoney("  ")
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("garbage returns error", func(t *testing.T) {
		_, err := ParseMoney("twelve")
		assert.Error(t, err)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	m1, _ := NewMoney(100, 1)
	m2, _ := NewMoney(50, 1)
	m3, _ := NewMoney(200, 2)

	assert.Equal(t, 1, m1.Cmp(m2))
	assert.Equal(t, -1, m2.Cmp(m1))
	assert.Equal(t, 0, m1.Cmp(m3))

	assert.True(t, m1.Equals(m3))
	assert.False(t, m1.Equals(m2))
	assert.False(t, m1.Equals(nil))

	var none *Money
	assert.True(t, none.Equals(nil))
}

func TestMoney_Copy(t *testing.T) {
	m, _ := NewMoney(1999, 100)
	c := m.Copy()

	assert.True(t, m.Equals(c))
	assert.NotSame(t, m, c)

	var none *Money
	assert.Nil(t, none.Copy())
}

func TestMoney_IsSafeForStorage(t *testing.T) {
	m, _ := NewMoney(249900, 100)
	assert.True(t, m.IsSafeForStorage())

	huge, err := ParseMoney("123456789012345678901234567890")
	require.NoError(t, err)
	assert.False(t, huge.IsSafeForStorage())
}

func TestMoney_HasAtMostCents(t *testing.T) {
	for _, s := range []string{"0", "18", "18.2", "18.20", "1/4", "0.05"} {
		m, err := ParseMoney(s)
		require.NoError(t, err)
		assert.True(t, m.HasAtMostCents(), s)
	}
	for _, s := range []string{"18.205", "1/3", "0.001"} {
		m, err := ParseMoney(s)
		require.NoError(t, err)
		assert.False(t, m.HasAtMostCents(), s)
	}
}
