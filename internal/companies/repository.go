package companies

import (
	"github.com/matheusmosca/discrepometro/internal/database"
	"github.com/matheusmosca/discrepometro/internal/store"
)

// Table descreve a tabela empresas
var Table = store.TableSpec{
	Name:    "empresas",
	Columns: []string{"id", "nome", "cnpj"},
	Order:   "nome",
}

// Repository é o acesso à tabela empresas
type Repository = store.Table[Company]

// NewRepository cria o repositório sobre o backend configurado
func NewRepository(b *database.Backend) Repository {
	return database.OpenTable[Company](b, Table)
}
