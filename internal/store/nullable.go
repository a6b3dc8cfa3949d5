package store

import (
	"bytes"
	"encoding/json"
)

// Nullable é um campo de atualização parcial que distingue três estados:
// ausente (Set falso), null (Set verdadeiro e Value nil) e um valor
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null cria um campo que limpa a coluna
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Some cria um campo com valor
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// UnmarshalJSON só é chamado quando a chave está presente no corpo, inclusive com null
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON escreve null ou o valor
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Column devolve o valor gravado na coluna: nil para null
func (n Nullable[T]) Column() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

// Apply inclui a coluna no patch quando o campo foi informado
func (n Nullable[T]) Apply(patch Patch, column string) {
	if n.Set {
		patch[column] = n.Column()
	}
}
