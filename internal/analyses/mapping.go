package analyses

import (
	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

// Mapping converte linhas de planilha em análises. Totais ausentes valem zero.
var Mapping = importer.Mapping[Analysis]{
	Headers: []string{
		"produto", "product", "codigo_produto", "product_code",
		"estoque_inicial_2021", "estoque_final_2021", "total_entradas", "total_saidas",
		"tipo_discrepancia", "fonte", "empresa_id", "company_ref",
	},
	Map: mapRow,
	Validate: func(a Analysis) error {
		return validation.Struct(a)
	},
}

func mapRow(r importer.Row) (Analysis, error) {
	a := Analysis{
		EmpresaID:        r.OptionalString("empresa_id", "company_ref"),
		Produto:          r.String("produto", "product"),
		CodigoProduto:    r.OptionalString("codigo_produto", "product_code"),
		TipoDiscrepancia: canonical(r, "tipo_discrepancia", validation.TiposDiscrepancia),
		Fonte:            canonical(r, "fonte", validation.Fontes),
	}

	var err error
	if a.EstoqueInicial2021, err = r.Float("estoque_inicial_2021"); err != nil {
		return a, err
	}
	if a.EstoqueFinal2021, err = r.Float("estoque_final_2021"); err != nil {
		return a, err
	}
	if a.TotalEntradas, err = r.Float("total_entradas"); err != nil {
		return a, err
	}
	if a.TotalSaidas, err = r.Float("total_saidas"); err != nil {
		return a, err
	}
	return a, nil
}

// canonical devolve o valor do enum escrito como na lista ("compra sem nota" vira
// "Compra sem Nota"); valores desconhecidos seguem como vieram para a validação recusar
func canonical(r importer.Row, header string, allowed []string) *string {
	raw := r.OptionalString(header)
	if raw == nil {
		return nil
	}
	token := importer.NormalizeHeader(*raw)
	for _, v := range allowed {
		if importer.NormalizeHeader(v) == token {
			return &v
		}
	}
	return raw
}
