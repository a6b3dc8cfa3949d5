package stock

import "github.com/matheusmosca/discrepometro/internal/store"

// Snapshot é a quantidade de um produto em estoque em uma data base
type Snapshot struct {
	ID                 string     `db:"id" json:"id"`
	EmpresaID          *string    `db:"empresa_id" json:"empresa_id"`
	Produto            string     `db:"produto" json:"produto" binding:"required"`
	QuantidadeFinal    float64    `db:"quantidade_final" json:"quantidade_final" binding:"gte=0"`
	DataBase           store.Date `db:"data_base" json:"data_base" binding:"required"`
	EstoqueInicial2021 *float64   `db:"estoque_inicial_2021" json:"estoque_inicial_2021"`
	EstoqueFinal2021   *float64   `db:"estoque_final_2021" json:"estoque_final_2021"`
}

// Fields retorna as colunas gravadas no insert
func (s Snapshot) Fields() map[string]any {
	return map[string]any{
		"id":                   s.ID,
		"empresa_id":           s.EmpresaID,
		"produto":              s.Produto,
		"quantidade_final":     s.QuantidadeFinal,
		"data_base":            s.DataBase,
		"estoque_inicial_2021": s.EstoqueInicial2021,
		"estoque_final_2021":   s.EstoqueFinal2021,
	}
}

// SnapshotPatch contém os campos de uma atualização parcial; empresa_id e os
// estoques de 2021 aceitam null
type SnapshotPatch struct {
	EmpresaID          store.Nullable[string]  `json:"empresa_id" binding:"omitempty,uuid"`
	Produto            *string                 `json:"produto" binding:"omitempty,min=1"`
	QuantidadeFinal    *float64                `json:"quantidade_final" binding:"omitempty,gte=0"`
	DataBase           *store.Date             `json:"data_base"`
	EstoqueInicial2021 store.Nullable[float64] `json:"estoque_inicial_2021"`
	EstoqueFinal2021   store.Nullable[float64] `json:"estoque_final_2021"`
}

// Patch converte os campos informados em colunas
func (p SnapshotPatch) Patch() store.Patch {
	patch := store.Patch{}
	if p.Produto != nil {
		patch["produto"] = *p.Produto
	}
	if p.QuantidadeFinal != nil {
		patch["quantidade_final"] = *p.QuantidadeFinal
	}
	if p.DataBase != nil {
		patch["data_base"] = *p.DataBase
	}
	p.EmpresaID.Apply(patch, "empresa_id")
	p.EstoqueInicial2021.Apply(patch, "estoque_inicial_2021")
	p.EstoqueFinal2021.Apply(patch, "estoque_final_2021")
	return patch
}
