package companies

import (
	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

// Mapping converte linhas de planilha em empresas ("name" e "tax_id" também são aceitos)
var Mapping = importer.Mapping[Company]{
	Headers: []string{"nome", "name", "cnpj", "tax_id"},
	Map: func(r importer.Row) (Company, error) {
		return Company{
			Nome: r.String("nome", "name"),
			CNPJ: r.String("cnpj", "tax_id"),
		}, nil
	},
	Validate: func(c Company) error { return validation.Struct(c) },
}
