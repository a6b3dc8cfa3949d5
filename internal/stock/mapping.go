package stock

import (
	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

// Mapping converte linhas de planilha em registros de estoque
var Mapping = importer.Mapping[Snapshot]{
	Headers: []string{
		"produto", "product", "quantidade_final", "final_quantity",
		"data_base", "base_date", "empresa_id", "company_ref",
		"estoque_inicial_2021", "estoque_final_2021",
	},
	Map: mapRow,
	Validate: func(s Snapshot) error {
		return validation.Struct(s)
	},
}

func mapRow(r importer.Row) (Snapshot, error) {
	s := Snapshot{
		EmpresaID: r.OptionalString("empresa_id", "company_ref"),
		Produto:   r.String("produto", "product"),
	}

	var err error
	if s.QuantidadeFinal, err = r.Float("quantidade_final", "final_quantity"); err != nil {
		return s, err
	}
	if s.DataBase, err = r.Date("data_base", "base_date"); err != nil {
		return s, err
	}
	if s.EstoqueInicial2021, err = r.OptionalFloat("estoque_inicial_2021"); err != nil {
		return s, err
	}
	if s.EstoqueFinal2021, err = r.OptionalFloat("estoque_final_2021"); err != nil {
		return s, err
	}
	return s, nil
}
