package xlsexport

import "github.com/xuri/excelize/v2"

const (
	fontFamily   = "Times New Roman"
	fontSize     = 11
	defaultWidth = 25
	dateFormat   = "02.01.2006 15:04"
)

type column struct {
	title string
	width float64
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) cell(col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellValue(w.sheet, cell, value)
}

// header пишет строку заголовков, закрепляет ее и включает автофильтр
func (w *sheetWriter) header(columns []column) error {
	w.row++
	style, err := w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: fontSize},
	})
	if err != nil {
		return err
	}
	for idx, col := range columns {
		name, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return err
		}
		width := col.width
		if width == 0 {
			width = defaultWidth
		}
		if err = w.f.SetColWidth(w.sheet, name, name, width); err != nil {
			return err
		}
		if err = w.cell(idx+1, col.title); err != nil {
			return err
		}
	}
	first, last, err := w.rowRange(len(columns))
	if err != nil {
		return err
	}
	if err = w.f.SetCellStyle(w.sheet, first, last, style); err != nil {
		return err
	}
	if err = w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	return w.f.AutoFilter(w.sheet, first+":"+last, nil)
}

// dataStyle оформляет строки данных с fromRow по текущую
func (w *sheetWriter) dataStyle(fromRow, colCount int) error {
	if w.row < fromRow {
		return nil
	}
	style, err := w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Family: fontFamily, Size: fontSize},
	})
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, fromRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(colCount, w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, first, last, style)
}

func (w *sheetWriter) rowRange(colCount int) (string, string, error) {
	first, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return "", "", err
	}
	last, err := excelize.CoordinatesToCellName(colCount, w.row)
	if err != nil {
		return "", "", err
	}
	return first, last, nil
}
