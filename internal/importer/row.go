package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/matheusmosca/discrepometro/internal/store"
)

// Row é uma linha de dados indexada pelos cabeçalhos normalizados
type Row struct {
	Line   int
	values map[string]string
}

// NewRow cria uma Row a partir de pares cabeçalho/valor já normalizados
func NewRow(line int, values map[string]string) Row {
	return Row{Line: line, values: values}
}

// String retorna o primeiro valor não vazio entre os cabeçalhos informados
func (r Row) String(headers ...string) string {
	for _, h := range headers {
		if v := r.values[h]; v != "" {
			return v
		}
	}
	return ""
}

// OptionalString retorna nil quando nenhum dos cabeçalhos tem valor
func (r Row) OptionalString(headers ...string) *string {
	if v := r.String(headers...); v != "" {
		return &v
	}
	return nil
}

// Float converte a coluna em número; ausente ou vazia vale zero
func (r Row) Float(headers ...string) (float64, error) {
	v, err := r.OptionalFloat(headers...)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// OptionalFloat converte a coluna em número; ausente ou vazia resulta em nil
func (r Row) OptionalFloat(headers ...string) (*float64, error) {
	raw := r.String(headers...)
	if raw == "" {
		return nil, nil
	}
	f, err := ParseNumber(raw)
	if err != nil {
		return nil, fmt.Errorf("coluna %s: %w", headers[0], err)
	}
	return &f, nil
}

// Decimal converte a coluna em valor monetário; ausente ou vazia vale zero
func (r Row) Decimal(headers ...string) (decimal.Decimal, error) {
	raw := r.String(headers...)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(decimalPoint(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("coluna %s: valor monetário inválido %q", headers[0], raw)
	}
	return d, nil
}

// Date converte a coluna em data; ausente ou vazia resulta em data zero
func (r Row) Date(headers ...string) (store.Date, error) {
	d, err := store.ParseDate(r.String(headers...))
	if err != nil {
		return store.Date{}, fmt.Errorf("coluna %s: %w", headers[0], err)
	}
	return d, nil
}

// Token retorna o valor sem acentos e em minúsculas ("Saída" vira "saida")
func (r Row) Token(headers ...string) string {
	return NormalizeHeader(r.String(headers...))
}

// ParseNumber aceita "12.5" e também vírgula decimal ("12,5")
func ParseNumber(raw string) (float64, error) {
	raw = decimalPoint(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("valor numérico inválido %q", raw)
	}
	return f, nil
}

func decimalPoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return raw
}
