package output

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
}

func TestSynthesizePreamble(t *testing.T) {
	cfg := &config.Config{}
	cfg.General.Origin = "AnnotSV"
	table := newTable(t, "SV_chrom\nchr1\n")

	synth := NewHeaderSynthesizer(cfg)
	synth.SetClock(fixedClock)
	lines, err := synth.Synthesize("input.tsv", table, nil, nil)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "##fileformat=VCFv4.2", lines[0])
	assert.Equal(t, "##fileDate=14/03/2024", lines[1])
	assert.Equal(t, "##source=AnnotSV", lines[2])
	require.True(t, strings.HasPrefix(lines[3], "##InputFile="))
	assert.True(t, filepath.IsAbs(strings.TrimPrefix(lines[3], "##InputFile=")))
}

func TestSynthesizeFallbackDeclarations(t *testing.T) {
	cfg := &config.Config{}
	cfg.General.Origin = "AnnotSV"
	table := newTable(t, "SV_chrom\nchr1\n")

	synth := NewHeaderSynthesizer(cfg)
	synth.SetClock(fixedClock)
	lines, err := synth.Synthesize("input.tsv", table, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, lines, `##FILTER=<ID=PASS,Description="Passed filter">`)
	assert.Contains(t, lines, `##FORMAT=<ID=GT,Number=.,Type=String,Description="Imported from AnnotSV">`)
}

func TestSynthesizeObservedFilters(t *testing.T) {
	cfg := &config.Config{}
	cfg.General.Origin = "AnnotSV"
	cfg.VCFColumns.Filter = config.ColumnSpec{Column: "Filter"}
	table := newTable(t, "SV_chrom\tFilter\nchr1\tPASS\nchr1\tlowQual\nchr2\tPASS\nchr2\t.\n")

	synth := NewHeaderSynthesizer(cfg)
	synth.SetClock(fixedClock)
	lines, err := synth.Synthesize("input.tsv", table, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, lines, `##FILTER=<ID=.,Description=".">`)
	assert.Contains(t, lines, `##FILTER=<ID=PASS,Description=".">`)
	assert.Contains(t, lines, `##FILTER=<ID=lowQual,Description=".">`)
	assert.NotContains(t, lines, `##FILTER=<ID=PASS,Description="Passed filter">`)
}

func TestSynthesizeRefAltDeclarations(t *testing.T) {
	cfg := &config.Config{}
	cfg.General.Origin = "AnnotSV"
	cfg.VCFColumns.Ref = config.ColumnSpec{Column: "REF"}
	cfg.VCFColumns.Alt = config.ColumnSpec{Column: "ALT"}
	cfg.ColumnsDescription = config.ColumnsDescription{
		"ALT": {"DEL": {Description: "Deletion"}},
	}
	table := newTable(t, "REF\tALT\nN\tDEL\nN\tDUP\n")

	synth := NewHeaderSynthesizer(cfg)
	synth.SetClock(fixedClock)
	lines, err := synth.Synthesize("input.tsv", table, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, lines, `##REF=<ID=N,Description="Imported from AnnotSV">`)
	assert.Contains(t, lines, `##ALT=<ID=DEL,Description="Deletion">`)
	assert.Contains(t, lines, `##ALT=<ID=DUP,Description="Imported from AnnotSV">`)
}

func TestSynthesizeInfoDeclarations(t *testing.T) {
	cfg := &config.Config{}
	cfg.General.Origin = "AnnotSV"
	cfg.ColumnsDescription = config.ColumnsDescription{
		"INFO": {
			"Gene":      {Description: "Overlapped gene symbol"},
			"SV_length": {Description: "Variant length", Type: "Integer"},
		},
	}
	table := newTable(t, "SV_chrom\nchr1\n")

	synth := NewHeaderSynthesizer(cfg)
	synth.SetClock(fixedClock)
	lines, err := synth.Synthesize("input.tsv", table, nil, []string{"SV_type", "Gene", "SV_length"})
	require.NoError(t, err)

	var infoLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "##INFO=") {
			infoLines = append(infoLines, line)
		}
	}
	assert.Equal(t, []string{
		`##INFO=<ID=SV_type,Number=.,Type=String,Description="Imported from AnnotSV">`,
		`##INFO=<ID=Gene,Number=.,Type=String,Description="Overlapped gene symbol">`,
		`##INFO=<ID=SV_length,Number=.,Type=Integer,Description="Variant length">`,
	}, infoLines)
}

func TestSynthesizeFormatSubfields(t *testing.T) {
	cfg := &config.Config{}
	cfg.General.Origin = "AnnotSV"
	cfg.VCFColumns.Format = config.ColumnSpec{Column: "FORMAT"}
	cfg.ColumnsDescription = config.ColumnsDescription{
		"FORMAT": {"GT": {Description: "Genotype"}},
	}
	table := newTable(t, "SV_chrom\tFORMAT\nchr1\tGT:DP\nchr2\tGT:.\n")

	synth := NewHeaderSynthesizer(cfg)
	synth.SetClock(fixedClock)
	lines, err := synth.Synthesize("input.tsv", table, nil, nil)
	require.NoError(t, err)

	var formatLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "##FORMAT=") {
			formatLines = append(formatLines, line)
		}
	}
	assert.Equal(t, []string{
		`##FORMAT=<ID=DP,Number=.,Type=String,Description="Imported from AnnotSV">`,
		`##FORMAT=<ID=GT,Number=.,Type=String,Description="Genotype">`,
	}, formatLines)
}

func TestSynthesizeGenomeLinesAndTitle(t *testing.T) {
	cfg := &config.Config{}
	cfg.General.Origin = "AnnotSV"
	cfg.Genome.Assembly = "GRCh38"
	cfg.Genome.VCFHeader = []string{
		"##contig=<ID=chr1,length=248956422>",
		"##reference=GRCh38",
	}
	table := newTable(t, "SV_chrom\nchr1\n")

	synth := NewHeaderSynthesizer(cfg)
	synth.SetClock(fixedClock)
	lines, err := synth.Synthesize("input.tsv", table, []string{"sampleA", "sampleB"}, nil)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(lines), 3)
	title := lines[len(lines)-1]
	assert.Equal(t, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsampleA\tsampleB", title)
	assert.Equal(t, "##reference=GRCh38", lines[len(lines)-2])
	assert.Equal(t, "##contig=<ID=chr1,length=248956422>", lines[len(lines)-3])
}

func newTable(t *testing.T, content string) *tsv.Table {
	t.Helper()
	table, err := tsv.Parse(strings.NewReader(content), 0)
	require.NoError(t, err)
	return table
}
