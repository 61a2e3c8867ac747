package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/quizsession"
)

// Sink writes export blocks as a document.
type Sink interface {
	Export(w io.Writer, title string, blocks []Block) error
}

// PDFSink renders A4 PDFs with the core Arial font.
type PDFSink struct{}

// Export implements Sink.
func (PDFSink) Export(w io.Writer, title string, blocks []Block) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(200, 10, ASCII(title), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	inBody := false
	for _, b := range blocks {
		switch b.Kind {
		case BlockScore:
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(200, 10, b.Text, "", 1, "", false, 0, "")
		case BlockBody:
			if !inBody {
				pdf.SetFont("Arial", "", 12)
				inBody = true
			}
			pdf.MultiCell(0, 10, b.Text, "", "", false)
		case BlockGap:
			if inBody {
				pdf.Ln(5)
			} else {
				pdf.Ln(10)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// TextSink writes the blocks as plain text.
type TextSink struct{}

// Export implements Sink.
func (TextSink) Export(w io.Writer, title string, blocks []Block) error {
	bw := bufio.NewWriter(w)
	title = ASCII(title)
	fmt.Fprintf(bw, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	for _, b := range blocks {
		switch b.Kind {
		case BlockGap:
			bw.WriteString("\n")
		default:
			bw.WriteString(b.Text)
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

// SinkFor picks a sink from the file extension.
func SinkFor(path string) (Sink, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDFSink{}, nil
	case ".txt":
		return TextSink{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", apperr.ErrInvalidArgument, filepath.Ext(path))
	}
}

// ExportFile writes r to path using the sink matching its extension.
func ExportFile(path string, r quizsession.GradeReport) error {
	sink, err := SinkFor(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return sink.Export(w, Title, Blocks(r))
	})
}

// SummaryFile saves a summary as plain text.
func SummaryFile(path, summary string) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, summary)
		return err
	})
}

// Resolve places name inside dir unless name is already a path.
func Resolve(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(dir, name)
}

func writeFile(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
