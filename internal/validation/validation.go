package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/matheusmosca/discrepometro/internal/store"
)

// ErrInvalid indica dados de entrada rejeitados pelas regras de validação
var ErrInvalid = errors.New("dados inválidos")

// Tipos de transação
const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

// Tipos de discrepância
const (
	CompraSemNota   = "Compra sem Nota"
	VendaSemNota    = "Venda sem Nota"
	SemDiscrepancia = "Sem Discrepância"
)

var (
	TiposTransacao    = []string{TipoEntrada, TipoSaida}
	TiposDiscrepancia = []string{CompraSemNota, VendaSemNota, SemDiscrepancia}
	Fontes            = []string{"EFD", "Planilha Emitente", "Planilha Destinatário", "Inventário Fev/21", "Inventário Fev/22"}
)

// Register adiciona as regras do domínio a um validator. As tags usadas são
// as mesmas do gin ("binding"), então a validação do HTTP e da importação é a mesma.
func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterCustomTypeFunc(dateValue, store.Date{})
	v.RegisterCustomTypeFunc(nullableValue, store.Nullable[string]{}, store.Nullable[float64]{})

	rules := map[string][]string{
		"tipo_transacao":    TiposTransacao,
		"tipo_discrepancia": TiposDiscrepancia,
		"fonte":             Fontes,
	}
	for tag, allowed := range rules {
		if err := v.RegisterValidation(tag, oneOf(allowed)); err != nil {
			return fmt.Errorf("registering %s: %w", tag, err)
		}
	}
	return nil
}

// New cria um validator com as regras do domínio registradas
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

var defaultValidator = New()

// Struct valida a struct e envolve as falhas em ErrInvalid
func Struct(s any) error {
	if err := defaultValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// oneOf aceita valores vazios; a obrigatoriedade fica a cargo de "required"
func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || slices.Contains(allowed, value)
	}
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// nullableValue expõe o valor do campo; null e ausente caem no omitempty
func nullableValue(field reflect.Value) any {
	if n, ok := field.Interface().(interface{ Column() any }); ok {
		return n.Column()
	}
	return nil
}

func dateValue(field reflect.Value) any {
	if d, ok := field.Interface().(store.Date); ok {
		return d.String()
	}
	return nil
}
