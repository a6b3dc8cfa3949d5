package importer

import (
	"fmt"
	"slices"

	"github.com/schollz/closestmatch"
)

// Mapping descreve como uma linha vira um registro da entidade T
type Mapping[T any] struct {
	// Headers lista os cabeçalhos reconhecidos, incluindo apelidos
	Headers []string
	Map     func(Row) (T, error)
	// Validate é aplicado a cada registro mapeado, quando definido
	Validate func(T) error
}

// IgnoredHeader é um cabeçalho desconhecido, com a sugestão mais próxima
type IgnoredHeader struct {
	Header     string `json:"cabecalho"`
	Suggestion string `json:"sugestao,omitempty"`
}

// Result contém os registros mapeados e os cabeçalhos ignorados
type Result[T any] struct {
	Records []T
	Ignored []IgnoredHeader
}

// LineError identifica a linha do arquivo que não pôde ser convertida
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("linha %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Decode aplica o mapeamento a todas as linhas; qualquer erro aborta o lote inteiro
func Decode[T any](sheet *Sheet, mapping Mapping[T]) (*Result[T], error) {
	result := &Result[T]{Ignored: ignoredHeaders(sheet.Headers, mapping.Headers)}

	for _, row := range sheet.Rows {
		record, err := mapping.Map(row)
		if err == nil && mapping.Validate != nil {
			err = mapping.Validate(record)
		}
		if err != nil {
			return nil, &LineError{Line: row.Line, Err: err}
		}
		result.Records = append(result.Records, record)
	}
	return result, nil
}

func ignoredHeaders(headers, known []string) []IgnoredHeader {
	var cm *closestmatch.ClosestMatch
	var ignored []IgnoredHeader
	for _, h := range headers {
		if h == "" || slices.Contains(known, h) {
			continue
		}
		if cm == nil {
			cm = closestmatch.New(known, []int{2, 3})
		}
		ignored = append(ignored, IgnoredHeader{Header: h, Suggestion: cm.Closest(h)})
	}
	return ignored
}
