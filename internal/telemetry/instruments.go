package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/matheusmosca/discrepometro"

// Tracer retorna o tracer do provider global
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartSpan cria um span para uma operação sobre uma tabela do data store
func StartSpan(ctx context.Context, tracer trace.Tracer, operation, table string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, table+"."+operation)
	span.SetAttributes(
		attribute.String("db.table", table),
		attribute.String("app.operation", operation),
	)
	return ctx, span
}

// Metrics agrupa os contadores de negócio do serviço
type Metrics struct {
	importedRows metric.Int64Counter
	flagged      metric.Int64Counter
}

// NewMetrics cria os contadores no meter do provider global
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	importedRows, err := meter.Int64Counter("discrepometro.import.rows",
		metric.WithDescription("Linhas gravadas por importação em lote"))
	if err != nil {
		return nil, err
	}

	flagged, err := meter.Int64Counter("discrepometro.discrepancies.flagged",
		metric.WithDescription("Análises sinalizadas com discrepância ao serem listadas"))
	if err != nil {
		return nil, err
	}

	return &Metrics{importedRows: importedRows, flagged: flagged}, nil
}

// RecordImport contabiliza as linhas gravadas em uma importação
func (m *Metrics) RecordImport(ctx context.Context, table string, rows int) {
	if m == nil {
		return
	}
	m.importedRows.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("db.table", table)))
}

// RecordFlagged contabiliza análises com discrepância
func (m *Metrics) RecordFlagged(ctx context.Context, count int) {
	if m == nil || count == 0 {
		return
	}
	m.flagged.Add(ctx, int64(count))
}
