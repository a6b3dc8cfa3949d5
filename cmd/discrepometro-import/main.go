package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/analyses"
	"github.com/matheusmosca/discrepometro/internal/companies"
	"github.com/matheusmosca/discrepometro/internal/config"
	"github.com/matheusmosca/discrepometro/internal/database"
	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/logger"
	"github.com/matheusmosca/discrepometro/internal/stock"
	"github.com/matheusmosca/discrepometro/internal/telemetry"
	"github.com/matheusmosca/discrepometro/internal/transactions"
)

// importFunc grava a planilha na tabela da entidade e devolve quantas linhas
// foram gravadas e os cabeçalhos ignorados
type importFunc func(context.Context, *importer.Sheet) (int, []importer.IgnoredHeader, error)

func importers(b *database.Backend, logg *zap.Logger, metrics *telemetry.Metrics) map[string]importFunc {
	return map[string]importFunc{
		"empresas":   adapt(companies.NewUseCase(companies.NewRepository(b), logg, metrics).Import),
		"transacoes": adapt(transactions.NewUseCase(transactions.NewRepository(b), logg, metrics).Import),
		"estoque":    adapt(stock.NewUseCase(stock.NewRepository(b), logg, metrics).Import),
		"analises":   adapt(analyses.NewUseCase(analyses.NewRepository(b), logg, metrics).Import),
	}
}

func adapt[T any](fn func(context.Context, *importer.Sheet) (*importer.Result[T], error)) importFunc {
	return func(ctx context.Context, sheet *importer.Sheet) (int, []importer.IgnoredHeader, error) {
		result, err := fn(ctx, sheet)
		if err != nil {
			return 0, nil, err
		}
		return len(result.Records), result.Ignored, nil
	}
}

var entities = []string{"empresas", "transacoes", "estoque", "analises"}

func main() {
	app := &cli.App{
		Name:  "discrepometro-import",
		Usage: "importa uma planilha .csv ou .xlsx para uma tabela do Discrepômetro",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "entidade",
				Aliases:  []string{"e"},
				Usage:    fmt.Sprintf("tabela de destino (%v)", entities),
				Required: true,
			},
			&cli.PathFlag{
				Name:     "arquivo",
				Aliases:  []string{"f"},
				Usage:    "arquivo .csv ou .xlsx",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "delimitador",
				Aliases: []string{"d"},
				Value:   ",",
				Usage:   "separador de colunas do CSV",
			},
			&cli.BoolFlag{
				Name:  "latin1",
				Usage: "decodifica o CSV como ISO-8859-1",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	opts, err := options(c.String("delimitador"), c.Bool("latin1"))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logg, err := logger.New(logger.Config{Development: true, Level: cfg.Logger.Level, Encoding: "console"})
	if err != nil {
		return err
	}
	defer logg.Sync()

	backend, err := database.Open(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer backend.Close()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return err
	}

	entity := c.String("entidade")
	importFn, ok := importers(backend, logg, metrics)[entity]
	if !ok {
		return fmt.Errorf("entidade desconhecida %q (use %v)", entity, entities)
	}

	path := c.Path("arquivo")
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	sheet, err := importer.Read(file, path, opts)
	if err != nil {
		return err
	}

	imported, ignored, err := importFn(ctx, sheet)
	if err != nil {
		return fmt.Errorf("falha ao importar %s: %w", path, err)
	}

	sort.Slice(ignored, func(i, j int) bool { return ignored[i].Header < ignored[j].Header })
	for _, h := range ignored {
		logg.Warn("⚠️ Cabeçalho ignorado", zap.String("cabecalho", h.Header), zap.String("sugestao", h.Suggestion))
	}
	logg.Info("✅ Importação concluída", zap.String("entidade", entity), zap.Int("linhas", imported))
	return nil
}

func options(delimiter string, latin1 bool) (importer.Options, error) {
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return importer.Options{}, fmt.Errorf("delimitador deve ter um caractere, recebido %q", delimiter)
	}
	return importer.Options{Delimiter: runes[0], Latin1: latin1}, nil
}
