package transactions

import (
	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

// Mapping converte linhas de planilha em transações. Colunas numéricas ausentes valem zero.
var Mapping = importer.Mapping[Transaction]{
	Headers: []string{
		"produto", "product", "codigo_produto", "nome_produto",
		"valor", "value", "data", "date", "quantidade", "quantity",
		"tipo", "direction", "cfop", "tax_code", "empresa_id", "company_ref",
		"estoque_inicial_2021", "estoque_final_2021", "total_entradas", "total_saidas",
	},
	Map: mapRow,
	Validate: func(t Transaction) error {
		return validation.Struct(t)
	},
}

func mapRow(r importer.Row) (Transaction, error) {
	t := Transaction{
		EmpresaID:     r.OptionalString("empresa_id", "company_ref"),
		Produto:       r.String("produto", "product"),
		CodigoProduto: r.OptionalString("codigo_produto"),
		NomeProduto:   r.OptionalString("nome_produto"),
		CFOP:          r.String("cfop", "tax_code"),
	}
	if tipo := direction(r.Token("tipo", "direction")); tipo != "" {
		t.Tipo = &tipo
	}

	var err error
	if t.Quantidade, err = r.Float("quantidade", "quantity"); err != nil {
		return t, err
	}
	if t.Valor, err = r.Decimal("valor", "value"); err != nil {
		return t, err
	}
	if t.Data, err = r.Date("data", "date"); err != nil {
		return t, err
	}
	if t.EstoqueInicial2021, err = r.OptionalFloat("estoque_inicial_2021"); err != nil {
		return t, err
	}
	if t.EstoqueFinal2021, err = r.OptionalFloat("estoque_final_2021"); err != nil {
		return t, err
	}
	if t.TotalEntradas, err = r.OptionalFloat("total_entradas"); err != nil {
		return t, err
	}
	if t.TotalSaidas, err = r.OptionalFloat("total_saidas"); err != nil {
		return t, err
	}
	return t, nil
}

// direction aceita os sinônimos em inglês das planilhas de origem
func direction(token string) string {
	switch token {
	case "inflow", "in", "entradas":
		return validation.TipoEntrada
	case "outflow", "out", "saidas":
		return validation.TipoSaida
	}
	return token
}
