package transactions

import (
	"github.com/matheusmosca/discrepometro/internal/database"
	"github.com/matheusmosca/discrepometro/internal/store"
)

// Table descreve a tabela transacoes
var Table = store.TableSpec{
	Name: "transacoes",
	Columns: []string{
		"id", "empresa_id", "produto", "codigo_produto", "nome_produto",
		"quantidade", "valor", "data", "tipo", "cfop",
		"estoque_inicial_2021", "estoque_final_2021", "total_entradas", "total_saidas",
	},
	Order: "data",
}

// Repository é o acesso à tabela transacoes
type Repository = store.Table[Transaction]

// NewRepository cria o repositório sobre o backend configurado
func NewRepository(b *database.Backend) Repository {
	return database.OpenTable[Transaction](b, Table)
}
