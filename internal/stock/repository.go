package stock

import (
	"github.com/matheusmosca/discrepometro/internal/database"
	"github.com/matheusmosca/discrepometro/internal/store"
)

// Table descreve a tabela estoque
var Table = store.TableSpec{
	Name: "estoque",
	Columns: []string{
		"id", "empresa_id", "produto", "quantidade_final", "data_base",
		"estoque_inicial_2021", "estoque_final_2021",
	},
	Order: "produto",
}

// Repository é o acesso à tabela estoque
type Repository = store.Table[Snapshot]

// NewRepository cria o repositório sobre o backend configurado
func NewRepository(b *database.Backend) Repository {
	return database.OpenTable[Snapshot](b, Table)
}
