package plot

import "fmt"
import "strings"
import "github.com/pkg/errors"
import "github.com/xuri/excelize/v2"

const maxSheetName = 31

// XLSX is a Sink writing every plotted series to its own sheet of a
// workbook, as a two column table with a line chart next to it. The workbook
// is saved after every Plot.
type XLSX struct {
	path   string
	f      *excelize.File
	sheets map[string]bool
}

// NewXLSX creates a sink saving to path.
func NewXLSX(path string) *XLSX {
	return &XLSX{path: path, f: excelize.NewFile(), sheets: map[string]bool{}}
}

// Path returns the workbook file name.
func (x *XLSX) Path() string {
	return x.path
}

// Sheets returns how many series were plotted.
func (x *XLSX) Sheets() int {
	return len(x.sheets)
}

// Plot writes series to a new sheet named after l.Title and saves.
func (x *XLSX) Plot(series []float64, l Labels) error {
	sheet := x.sheetName(l.Title)
	if len(x.sheets) == 0 {
		if err := x.f.SetSheetName("Sheet1", sheet); err != nil {
			return errors.Wrap(err, "plot: rename sheet")
		}
	} else if _, err := x.f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "plot: new sheet")
	}
	x.sheets[sheet] = true

	header := []interface{}{orDefault(l.X, "step"), orDefault(l.Y, "value")}
	if err := x.f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "plot: header")
	}
	for i, v := range series {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{i, v}
		if err := x.f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "plot: row %d", i)
		}
	}

	if len(series) > 0 {
		last := len(series) + 1
		err := x.f.AddChart(sheet, "D2", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("'%s'!$B$1", sheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, last),
			}},
			Title: []excelize.RichTextRun{{Text: orDefault(l.Title, sheet)}},
			XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: orDefault(l.X, "step")}}},
			YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: orDefault(l.Y, "value")}}},
		})
		if err != nil {
			return errors.Wrap(err, "plot: chart")
		}
	}

	if err := x.f.SaveAs(x.path); err != nil {
		return errors.Wrapf(err, "plot: save %s", x.path)
	}
	return nil
}

// Close releases the workbook.
func (x *XLSX) Close() error {
	return x.f.Close()
}

// sheetName turns a title into an unused valid sheet name.
func (x *XLSX) sheetName(title string) string {
	base := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]'`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if base == "" {
		base = "series"
	}
	name := truncate(base, maxSheetName)
	for i := 2; x.sheets[name]; i++ {
		suffix := fmt.Sprintf(" %d", i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
