package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptyFile indica um arquivo sem linha de cabeçalho
	ErrEmptyFile = errors.New("arquivo vazio")

	// ErrUnsupportedFormat indica uma extensão que não é .csv nem .xlsx
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")

	// ErrMalformed indica um arquivo que não pôde ser interpretado
	// (aspas soltas no CSV, delimitador inválido, planilha corrompida)
	ErrMalformed = errors.New("arquivo malformado")
)

// Options controla a leitura de arquivos CSV
type Options struct {
	// Delimiter é o separador de colunas; zero significa vírgula
	Delimiter rune
	// Latin1 decodifica o arquivo como ISO-8859-1 (planilhas exportadas no Windows)
	Latin1 bool
}

// Sheet é o conteúdo tabular de um arquivo importado
type Sheet struct {
	Headers []string
	Rows    []Row
}

// Read lê um arquivo .csv ou .xlsx, escolhendo o leitor pela extensão
func Read(r io.Reader, filename string, opts Options) (*Sheet, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".txt", "":
		return ReadCSV(r, opts)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV lê um CSV cuja primeira linha contém os cabeçalhos
func ReadCSV(r io.Reader, opts Options) (*Sheet, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if opts.Delimiter != 0 {
		if !validDelimiter(opts.Delimiter) {
			return nil, fmt.Errorf("%w: delimitador %q inválido", ErrMalformed, opts.Delimiter)
		}
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler cabeçalho: %w", ErrMalformed, err)
	}

	sheet := &Sheet{Headers: normalizeHeaders(header)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: erro ao ler CSV: %w", ErrMalformed, err)
		}
		line, _ := reader.FieldPos(0)
		sheet.add(line, record)
	}
	return sheet, nil
}

// ReadXLSX lê a primeira aba de uma planilha .xlsx
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao abrir planilha: %w", ErrMalformed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler planilha: %w", ErrMalformed, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	sheet := &Sheet{Headers: normalizeHeaders(rows[0])}
	for i, record := range rows[1:] {
		sheet.add(i+2, record)
	}
	return sheet, nil
}

// validDelimiter segue as regras do encoding/csv: nem aspas, nem quebra de linha,
// nem um rune inválido
func validDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && r != unicode.ReplacementChar && utf8.ValidRune(r)
}

// add registra uma linha, descartando linhas cujas células estão todas vazias
func (s *Sheet) add(line int, record []string) {
	values := make(map[string]string, len(s.Headers))
	blank := true
	for i, header := range s.Headers {
		if header == "" || i >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value != "" {
			blank = false
		}
		values[header] = value
	}
	if blank {
		return
	}
	s.Rows = append(s.Rows, Row{Line: line, values: values})
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = NormalizeHeader(h)
	}
	return headers
}

// NormalizeHeader converte "Quantidade Final" em "quantidade_final" e "Código" em "codigo"
func NormalizeHeader(header string) string {
	header = strings.TrimPrefix(strings.TrimSpace(header), "\ufeff")
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), header)
	if err == nil {
		header = folded
	}

	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}
