package transactions

import (
	"github.com/shopspring/decimal"

	"github.com/matheusmosca/discrepometro/internal/store"
)

// valor trafega como número no JSON, não como string
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction representa uma movimentação de estoque (entrada ou saída) de um produto
type Transaction struct {
	ID                 string          `db:"id" json:"id"`
	EmpresaID          *string         `db:"empresa_id" json:"empresa_id"`
	Produto            string          `db:"produto" json:"produto" binding:"required"`
	CodigoProduto      *string         `db:"codigo_produto" json:"codigo_produto"`
	NomeProduto        *string         `db:"nome_produto" json:"nome_produto"`
	Quantidade         float64         `db:"quantidade" json:"quantidade" binding:"gt=0"`
	Valor              decimal.Decimal `db:"valor" json:"valor" binding:"gt=0"`
	Data               store.Date      `db:"data" json:"data" binding:"required"`
	Tipo               *string         `db:"tipo" json:"tipo" binding:"omitempty,tipo_transacao"`
	CFOP               string          `db:"cfop" json:"cfop" binding:"required"`
	EstoqueInicial2021 *float64        `db:"estoque_inicial_2021" json:"estoque_inicial_2021"`
	EstoqueFinal2021   *float64        `db:"estoque_final_2021" json:"estoque_final_2021"`
	TotalEntradas      *float64        `db:"total_entradas" json:"total_entradas"`
	TotalSaidas        *float64        `db:"total_saidas" json:"total_saidas"`
}

// Fields retorna as colunas gravadas no insert
func (t Transaction) Fields() map[string]any {
	return map[string]any{
		"id":                   t.ID,
		"empresa_id":           t.EmpresaID,
		"produto":              t.Produto,
		"codigo_produto":       t.CodigoProduto,
		"nome_produto":         t.NomeProduto,
		"quantidade":           t.Quantidade,
		"valor":                t.Valor,
		"data":                 t.Data,
		"tipo":                 t.Tipo,
		"cfop":                 t.CFOP,
		"estoque_inicial_2021": t.EstoqueInicial2021,
		"estoque_final_2021":   t.EstoqueFinal2021,
		"total_entradas":       t.TotalEntradas,
		"total_saidas":         t.TotalSaidas,
	}
}

// TransactionPatch contém os campos de uma atualização parcial. Os campos
// Nullable aceitam null para limpar a coluna.
type TransactionPatch struct {
	EmpresaID          store.Nullable[string]  `json:"empresa_id" binding:"omitempty,uuid"`
	Produto            *string                 `json:"produto" binding:"omitempty,min=1"`
	CodigoProduto      store.Nullable[string]  `json:"codigo_produto"`
	NomeProduto        store.Nullable[string]  `json:"nome_produto"`
	Quantidade         *float64                `json:"quantidade" binding:"omitempty,gt=0"`
	Valor              *decimal.Decimal        `json:"valor" binding:"omitempty,gt=0"`
	Data               *store.Date             `json:"data"`
	Tipo               store.Nullable[string]  `json:"tipo" binding:"omitempty,tipo_transacao"`
	CFOP               *string                 `json:"cfop" binding:"omitempty,min=1"`
	EstoqueInicial2021 store.Nullable[float64] `json:"estoque_inicial_2021"`
	EstoqueFinal2021   store.Nullable[float64] `json:"estoque_final_2021"`
	TotalEntradas      store.Nullable[float64] `json:"total_entradas"`
	TotalSaidas        store.Nullable[float64] `json:"total_saidas"`
}

// Patch converte os campos informados em colunas
func (p TransactionPatch) Patch() store.Patch {
	patch := store.Patch{}
	set := func(column string, isSet bool, value any) {
		if isSet {
			patch[column] = value
		}
	}
	set("produto", p.Produto != nil, deref(p.Produto))
	set("quantidade", p.Quantidade != nil, deref(p.Quantidade))
	set("valor", p.Valor != nil, deref(p.Valor))
	set("data", p.Data != nil, deref(p.Data))
	set("cfop", p.CFOP != nil, deref(p.CFOP))
	p.EmpresaID.Apply(patch, "empresa_id")
	p.CodigoProduto.Apply(patch, "codigo_produto")
	p.NomeProduto.Apply(patch, "nome_produto")
	p.Tipo.Apply(patch, "tipo")
	p.EstoqueInicial2021.Apply(patch, "estoque_inicial_2021")
	p.EstoqueFinal2021.Apply(patch, "estoque_final_2021")
	p.TotalEntradas.Apply(patch, "total_entradas")
	p.TotalSaidas.Apply(patch, "total_saidas")
	return patch
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// ListFilter são os filtros aceitos na listagem (query string)
type ListFilter struct {
	EmpresaID  string `form:"empresa_id"`
	Tipo       string `form:"tipo" binding:"omitempty,tipo_transacao"`
	CFOP       string `form:"cfop"`
	DataInicio string `form:"data_inicio"`
	DataFim    string `form:"data_fim"`
}
