package analyses

import (
	"time"

	"github.com/matheusmosca/discrepometro/internal/store"
)

// Analysis é uma análise de discrepância de estoque de um produto
type Analysis struct {
	ID                 string    `db:"id" json:"id"`
	EmpresaID          *string   `db:"empresa_id" json:"empresa_id"`
	Produto            string    `db:"produto" json:"produto" binding:"required"`
	CodigoProduto      *string   `db:"codigo_produto" json:"codigo_produto"`
	EstoqueInicial2021 float64   `db:"estoque_inicial_2021" json:"estoque_inicial_2021"`
	EstoqueFinal2021   float64   `db:"estoque_final_2021" json:"estoque_final_2021"`
	TotalEntradas      float64   `db:"total_entradas" json:"total_entradas"`
	TotalSaidas        float64   `db:"total_saidas" json:"total_saidas"`
	TipoDiscrepancia   *string   `db:"tipo_discrepancia" json:"tipo_discrepancia" binding:"omitempty,tipo_discrepancia"`
	Fonte              *string   `db:"fonte" json:"fonte" binding:"omitempty,fonte"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Fields retorna as colunas gravadas no insert
func (a Analysis) Fields() map[string]any {
	return map[string]any{
		"id":                   a.ID,
		"empresa_id":           a.EmpresaID,
		"produto":              a.Produto,
		"codigo_produto":       a.CodigoProduto,
		"estoque_inicial_2021": a.EstoqueInicial2021,
		"estoque_final_2021":   a.EstoqueFinal2021,
		"total_entradas":       a.TotalEntradas,
		"total_saidas":         a.TotalSaidas,
		"tipo_discrepancia":    a.TipoDiscrepancia,
		"fonte":                a.Fonte,
		"created_at":           a.CreatedAt,
		"updated_at":           a.UpdatedAt,
	}
}

// AnalysisPatch contém os campos de uma atualização parcial. Empresa, código
// do produto, tipo e fonte aceitam null.
type AnalysisPatch struct {
	EmpresaID          store.Nullable[string] `json:"empresa_id" binding:"omitempty,uuid"`
	Produto            *string                `json:"produto" binding:"omitempty,min=1"`
	CodigoProduto      store.Nullable[string] `json:"codigo_produto"`
	EstoqueInicial2021 *float64               `json:"estoque_inicial_2021"`
	EstoqueFinal2021   *float64               `json:"estoque_final_2021"`
	TotalEntradas      *float64               `json:"total_entradas"`
	TotalSaidas        *float64               `json:"total_saidas"`
	TipoDiscrepancia   store.Nullable[string] `json:"tipo_discrepancia" binding:"omitempty,tipo_discrepancia"`
	Fonte              store.Nullable[string] `json:"fonte" binding:"omitempty,fonte"`
}

// Patch converte os campos informados em colunas
func (p AnalysisPatch) Patch() store.Patch {
	patch := store.Patch{}
	for column, value := range map[string]*float64{
		"estoque_inicial_2021": p.EstoqueInicial2021,
		"estoque_final_2021":   p.EstoqueFinal2021,
		"total_entradas":       p.TotalEntradas,
		"total_saidas":         p.TotalSaidas,
	} {
		if value != nil {
			patch[column] = *value
		}
	}
	if p.Produto != nil {
		patch["produto"] = *p.Produto
	}
	p.EmpresaID.Apply(patch, "empresa_id")
	p.CodigoProduto.Apply(patch, "codigo_produto")
	p.TipoDiscrepancia.Apply(patch, "tipo_discrepancia")
	p.Fonte.Apply(patch, "fonte")
	return patch
}

// ListFilter são os filtros do relatório de discrepâncias e da exportação
type ListFilter struct {
	EmpresaID  string `form:"empresa_id"`
	Tipo       string `form:"tipo" binding:"omitempty,tipo_discrepancia"`
	Fonte      string `form:"fonte" binding:"omitempty,fonte"`
	DataInicio string `form:"data_inicio"`
	DataFim    string `form:"data_fim"`
}
