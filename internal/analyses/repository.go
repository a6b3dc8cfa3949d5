package analyses

import (
	"github.com/matheusmosca/discrepometro/internal/database"
	"github.com/matheusmosca/discrepometro/internal/store"
)

// Table descreve a tabela analise_discrepancia
var Table = store.TableSpec{
	Name: "analise_discrepancia",
	Columns: []string{
		"id", "empresa_id", "produto", "codigo_produto",
		"estoque_inicial_2021", "estoque_final_2021", "total_entradas", "total_saidas",
		"tipo_discrepancia", "fonte", "created_at", "updated_at",
	},
	Order: "created_at",
}

// Repository é o acesso à tabela analise_discrepancia
type Repository = store.Table[Analysis]

// NewRepository cria o repositório sobre o backend configurado
func NewRepository(b *database.Backend) Repository {
	return database.OpenTable[Analysis](b, Table)
}
