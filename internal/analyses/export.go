package analyses

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Análises"

var exportHeaders = []any{
	"Produto", "Código", "Estoque Inicial 2021", "Entradas", "Saídas",
	"Estoque Final 2021", "Estoque Final Calculado", "Diferença",
	"Discrepância", "Tipo", "Fonte", "Criado em",
}

// WriteXLSX grava as análises em uma planilha .xlsx
func WriteXLSX(w io.Writer, views []View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return err
	}

	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			v.Produto,
			deref(v.CodigoProduto),
			v.EstoqueInicial2021,
			v.TotalEntradas,
			v.TotalSaidas,
			v.EstoqueFinal2021,
			v.EstoqueFinalCalculado,
			v.Diferenca,
			yesNo(v.TemDiscrepancia),
			deref(v.TipoDiscrepancia),
			deref(v.Fonte),
			v.CreatedAt.Format("02/01/2006"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
