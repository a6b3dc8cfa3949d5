package analyses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFinalStock(t *testing.T) {
	cases := []struct{ initial, in, out float64 }{
		{100, 50, 30},
		{0, 0, 0},
		{-5, 2.5, 10},
		{1e9, 1e-3, 7},
	}
	for _, c := range cases {
		assert.Equal(t, c.initial+c.in-c.out, ComputeFinalStock(c.initial, c.in, c.out))
	}
}

func TestHasDiscrepancy(t *testing.T) {
	balanced := Analysis{EstoqueInicial2021: 100, TotalEntradas: 50, TotalSaidas: 30, EstoqueFinal2021: 120}
	assert.False(t, balanced.HasDiscrepancy())

	off := balanced
	off.EstoqueFinal2021 = 119
	assert.True(t, off.HasDiscrepancy())
}

func TestHasDiscrepancy_ExactFloatComparison(t *testing.T) {
	// 0.1 + 0.2 é 0.30000000000000004 em float64
	a := Analysis{EstoqueInicial2021: 0.1, TotalEntradas: 0.2, TotalSaidas: 0, EstoqueFinal2021: 0.3}
	assert.True(t, a.HasDiscrepancy())

	x, y := 0.1, 0.2
	a.EstoqueFinal2021 = x + y
	assert.False(t, a.HasDiscrepancy())
}

func TestNewViews(t *testing.T) {
	views, flagged := NewViews([]Analysis{
		{Produto: "A", EstoqueInicial2021: 10, TotalEntradas: 5, TotalSaidas: 3, EstoqueFinal2021: 12},
		{Produto: "B", EstoqueInicial2021: 10, TotalEntradas: 5, TotalSaidas: 3, EstoqueFinal2021: 10},
	})

	assert.Equal(t, 1, flagged)
	assert.False(t, views[0].TemDiscrepancia)
	assert.Equal(t, 12.0, views[1].EstoqueFinalCalculado)
	assert.Equal(t, -2.0, views[1].Diferenca)
	assert.True(t, views[1].TemDiscrepancia)
}
