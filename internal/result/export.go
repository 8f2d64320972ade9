// Package result renders the full task collection as a downloadable report.
package result

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tarefas/internal/task"
)

// ErrUnknownFormat reports a format outside {json, csv, pdf}.
var ErrUnknownFormat = errors.New("formato de exportação desconhecido")

// Source is the slice of the store the exporter needs.
type Source interface {
	All(ctx context.Context) ([]task.Task, error)
}

type Exporter struct {
	src Source
}

func NewExporter(src Source) *Exporter { return &Exporter{src: src} }

// Export renders every live task in the requested format.
func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	all, err := e.src.All(ctx)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(all, "", "  ")
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "name", "description", "completed"})
		for _, t := range all {
			_ = w.Write([]string{
				strconv.FormatInt(t.ID, 10), t.Name, t.Description, strconv.FormatBool(t.Completed),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Relatorio de Tarefas")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for _, t := range all {
			state := "pendente"
			if t.Completed {
				state = "concluida"
			}
			line := fmt.Sprintf("#%d %s [%s] %s", t.ID, t.Name, state, t.Description)
			pdf.MultiCell(0, 6, line, "0", "L", false)
		}
		var buf strings.Builder
		if err := pdf.Output(io.Writer(&buf)); err != nil {
			return nil, err
		}
		return []byte(buf.String()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
