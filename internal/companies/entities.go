package companies

import "github.com/matheusmosca/discrepometro/internal/store"

// Company representa uma empresa cadastrada
type Company struct {
	ID   string `db:"id" json:"id"`
	Nome string `db:"nome" json:"nome" binding:"required"`
	CNPJ string `db:"cnpj" json:"cnpj" binding:"required,min=14"`
}

// Fields retorna as colunas gravadas no insert
func (c Company) Fields() map[string]any {
	return map[string]any{
		"id":   c.ID,
		"nome": c.Nome,
		"cnpj": c.CNPJ,
	}
}

// CompanyPatch contém os campos de uma atualização parcial
type CompanyPatch struct {
	Nome *string `json:"nome" binding:"omitempty,min=1"`
	CNPJ *string `json:"cnpj" binding:"omitempty,min=14"`
}

// Patch converte os campos informados em colunas
func (p CompanyPatch) Patch() store.Patch {
	patch := store.Patch{}
	if p.Nome != nil {
		patch["nome"] = *p.Nome
	}
	if p.CNPJ != nil {
		patch["cnpj"] = *p.CNPJ
	}
	return patch
}
