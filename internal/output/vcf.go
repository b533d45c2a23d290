package output

import (
	"bufio"
	"io"
	"strings"
)

// Record is one fully assembled VCF data line, every field already in its
// final string form.
type Record struct {
	GroupID string // variant group identifier, for diagnostics and storage
	Chrom   string
	Pos     string
	ID      string
	Ref     string
	Alt     string
	Qual    string
	Filter  string
	Info    string
	Format  string
	Samples []string
}

// VCFWriter writes a synthesized header followed by one data line per
// variant group.
type VCFWriter struct {
	w *bufio.Writer
}

// NewVCFWriter creates a VCF output writer on top of w.
func NewVCFWriter(w io.Writer) *VCFWriter {
	return &VCFWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the meta-information lines and the title line.
func (vw *VCFWriter) WriteHeader(lines []string) error {
	for _, line := range lines {
		if _, err := vw.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord writes one tab-separated data line.
func (vw *VCFWriter) WriteRecord(rec Record) error {
	var lb strings.Builder
	lb.Grow(128)

	lb.WriteString(rec.Chrom)
	lb.WriteByte('\t')
	lb.WriteString(rec.Pos)
	lb.WriteByte('\t')
	lb.WriteString(rec.ID)
	lb.WriteByte('\t')
	lb.WriteString(rec.Ref)
	lb.WriteByte('\t')
	lb.WriteString(rec.Alt)
	lb.WriteByte('\t')
	lb.WriteString(rec.Qual)
	lb.WriteByte('\t')
	lb.WriteString(rec.Filter)
	lb.WriteByte('\t')
	lb.WriteString(rec.Info)
	lb.WriteByte('\t')
	lb.WriteString(rec.Format)
	for _, sample := range rec.Samples {
		lb.WriteByte('\t')
		lb.WriteString(sample)
	}
	lb.WriteByte('\n')

	_, err := vw.w.WriteString(lb.String())
	return err
}

// Flush flushes buffered output.
func (vw *VCFWriter) Flush() error {
	return vw.w.Flush()
}
