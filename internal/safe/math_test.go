package safe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivide(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{name: "exact", a: 10, b: 4, want: 2.5},
		{name: "negative divisor", a: 9, b: -3, want: -3},
		{name: "zero numerator", a: 0, b: 7, want: 0},
		{name: "fraction", a: 1, b: 3, want: 1.0 / 3.0},
		{name: "fractional divisor", a: 3, b: 0.5, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Divide(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDivide_NonFiniteResults(t *testing.T) {
	got, err := Divide(math.MaxFloat64, 0.5)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = Divide(math.NaN(), 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestDivide_ByZero(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 123.456, math.MaxFloat64} {
		got, err := Divide(a, 0)
		require.ErrorIs(t, err, ErrDivisionByZero, "a=%v", a)
		assert.Zero(t, got)
	}

	_, err := Divide(5, math.Copysign(0, -1))
	assert.ErrorIs(t, err, ErrDivisionByZero, "negative zero is still zero")
}

func TestParseOperand(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "10", want: 10},
		{in: " -2.5 ", want: -2.5},
		{in: "1e3", want: 1000},
		{in: "0", want: 0},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperand(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNonNumericOperand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
