package leasing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentAmount(t *testing.T) {
	rent, err := RentAmount(10, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), rent)

	rent, err = RentAmount(1, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rent)
}

func TestRentAmount_Overflow(t *testing.T) {
	_, err := RentAmount(2, math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	// First multiply fits, second overflows
	_, err = RentAmount(1, math.MaxUint64/2, 3)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	// Exactly at the limit is fine
	rent, err := RentAmount(1, math.MaxUint64, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), rent)
}

func TestAddChecked(t *testing.T) {
	s, ok := addChecked(math.MaxUint64-1, 1)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), s)

	_, ok = addChecked(math.MaxUint64, 1)
	assert.False(t, ok)
}
