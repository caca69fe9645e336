package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/value"
)

func TestApplyNumberArithmetic(t *testing.T) {
	sum, err := value.Apply(value.Add, value.Number{N: 2}, value.Number{N: 3})
	require.NoError(t, err)
	require.Equal(t, value.Number{N: 5}, sum)

	product, err := value.Apply(value.Mul, value.Number{N: 2}, value.Number{N: 3})
	require.NoError(t, err)
	require.Equal(t, value.Number{N: 6}, product)
}

func TestApplyNumberTimesDimensionScales(t *testing.T) {
	result, err := value.Apply(value.Mul, value.Number{N: 2}, value.Dimension{N: 5, Unit: "px"})
	require.NoError(t, err)
	require.Equal(t, value.Dimension{N: 10, Unit: "px"}, result)
}

func TestApplyDimensionDividedByNumberScales(t *testing.T) {
	result, err := value.Apply(value.Div, value.Dimension{N: 10, Unit: "px"}, value.Number{N: 2})
	require.NoError(t, err)
	require.Equal(t, value.Dimension{N: 5, Unit: "px"}, result)
}

func TestApplyNumberDividedByDimensionIsTypeError(t *testing.T) {
	_, err := value.Apply(value.Div, value.Number{N: 10}, value.Dimension{N: 5, Unit: "px"})
	require.Error(t, err)
	var typeErr *cssperr.TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestApplyDimensionPlusNumberIsTypeError(t *testing.T) {
	_, err := value.Apply(value.Add, value.Dimension{N: 5, Unit: "px"}, value.Number{N: 2})
	require.Error(t, err)
	var typeErr *cssperr.TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestApplyDimensionAdditionConvertsUnits(t *testing.T) {
	result, err := value.Apply(value.Add, value.Dimension{N: 1, Unit: "in"}, value.Dimension{N: 48, Unit: "px"})
	require.NoError(t, err)
	d, ok := result.(value.Dimension)
	require.True(t, ok)
	require.Equal(t, "in", d.Unit)
	require.InDelta(t, 1.5, d.N, 1e-9)
}

func TestApplyIncompatibleUnitsIsTypeError(t *testing.T) {
	_, err := value.Apply(value.Add, value.Dimension{N: 1, Unit: "px"}, value.Dimension{N: 1, Unit: "deg"})
	require.Error(t, err)
}

func TestApplyDimensionTimesDimensionIsTypeError(t *testing.T) {
	_, err := value.Apply(value.Mul, value.Dimension{N: 1, Unit: "px"}, value.Dimension{N: 1, Unit: "px"})
	require.Error(t, err)
}

func TestApplyPercentageMulIsTypeError(t *testing.T) {
	_, err := value.Apply(value.Mul, value.Percentage{N: 50}, value.Percentage{N: 50})
	require.Error(t, err)
}

func TestEqualDimensionComparesAcrossUnits(t *testing.T) {
	require.True(t, value.Equal(value.Dimension{N: 1, Unit: "in"}, value.Dimension{N: 96, Unit: "px"}))
	require.False(t, value.Equal(value.Dimension{N: 1, Unit: "px"}, value.Dimension{N: 1, Unit: "deg"}))
}

func TestConvertRoundTrip(t *testing.T) {
	d, ok := value.Convert(value.Dimension{N: 2, Unit: "in"}, "px")
	require.True(t, ok)
	require.InDelta(t, 192, d.N, 1e-9)

	back, ok := value.Convert(d, "in")
	require.True(t, ok)
	require.InDelta(t, 2, back.N, 1e-9)
}

func TestColorHSLRoundTrip(t *testing.T) {
	c := value.Color{R: 255, G: 0, B: 0, A: 255}
	h, s, l := c.HSL()
	round := value.ColorFromHSL(h, s, l, c.A)
	require.Equal(t, c.R, round.R)
	require.Equal(t, c.G, round.G)
	require.Equal(t, c.B, round.B)
}

func TestNumberNegate(t *testing.T) {
	require.Equal(t, value.Number{N: -5}, value.Number{N: 5}.Negate())
	require.True(t, value.Number{N: -1}.IsNegative())
}
