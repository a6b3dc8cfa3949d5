package analyses

// ComputeFinalStock calcula o estoque final esperado: inicial + entradas - saídas
func ComputeFinalStock(initial, inflows, outflows float64) float64 {
	return initial + inflows - outflows
}

// ComputedFinal é o estoque final calculado a partir dos totais da análise
func (a Analysis) ComputedFinal() float64 {
	return ComputeFinalStock(a.EstoqueInicial2021, a.TotalEntradas, a.TotalSaidas)
}

// HasDiscrepancy compara o estoque final registrado com o calculado.
// A comparação é exata: qualquer diferença, inclusive de arredondamento, sinaliza.
func (a Analysis) HasDiscrepancy() bool {
	return a.ComputedFinal() != a.EstoqueFinal2021
}

// View é a análise acompanhada do resultado do cálculo, como devolvida pela API
type View struct {
	Analysis
	EstoqueFinalCalculado float64 `json:"estoque_final_calculado"`
	Diferenca             float64 `json:"diferenca"`
	TemDiscrepancia       bool    `json:"tem_discrepancia"`
}

// NewView calcula os campos derivados da análise
func NewView(a Analysis) View {
	computed := a.ComputedFinal()
	return View{
		Analysis:              a,
		EstoqueFinalCalculado: computed,
		Diferenca:             a.EstoqueFinal2021 - computed,
		TemDiscrepancia:       a.HasDiscrepancy(),
	}
}

// NewViews decora uma lista de análises e retorna quantas têm discrepância
func NewViews(list []Analysis) ([]View, int) {
	views := make([]View, len(list))
	flagged := 0
	for i, a := range list {
		views[i] = NewView(a)
		if views[i].TemDiscrepancia {
			flagged++
		}
	}
	return views, flagged
}
