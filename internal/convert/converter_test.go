package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/output"
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

const testProfileYAML = `
GENERAL:
  origin: AnnotSV
  mode: full&split
VCF_COLUMNS:
  "#CHROM": SV_chrom
  POS: SV_start
  INFO:
    AnnotSV_ID: AnnotSV_ID
    SV_type: SV_type
    Annotation_mode: Annotation_mode
  SAMPLE: Samples_ID
COLUMNS_DESCRIPTION:
  INFO:
    Gene:
      Description: Overlapped gene symbol
  FORMAT:
    GT:
      Description: Genotype
GENOME:
  assembly: GRCh38
  vcf_header:
    - "##contig=<ID=chr1,length=248956422>"
`

func TestConvertEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "AnnotSV_ID\tSV_chrom\tSV_start\tSamples_ID\tSV_type\tGene\tAnnotation_mode\n"+
		"V2\tchr10\t500\tsampleA\tDUP\tMYC\tfull\n"+
		"V1\tchr2\t100\tsampleA\tDEL\tBRCA1\tfull\n"+
		"V1\tchr2\t100\tsampleA\tDEL\tBRCA1_tx2\tsplit\n")

	conv, err := NewConverter(cfg, nil)
	require.NoError(t, err)
	conv.SetClock(func() time.Time {
		return time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	})

	var buf strings.Builder
	summary, err := conv.Convert(input, &buf)
	require.NoError(t, err)

	abs, err := filepath.Abs(input)
	require.NoError(t, err)

	want := strings.Join([]string{
		"##fileformat=VCFv4.2",
		"##fileDate=02/01/2024",
		"##source=AnnotSV",
		"##InputFile=" + abs,
		`##FILTER=<ID=PASS,Description="Passed filter">`,
		`##INFO=<ID=SV_type,Number=.,Type=String,Description="Imported from AnnotSV">`,
		`##INFO=<ID=Gene,Number=.,Type=String,Description="Overlapped gene symbol">`,
		`##INFO=<ID=Annotation_mode,Number=.,Type=String,Description="Imported from AnnotSV">`,
		`##FORMAT=<ID=GT,Number=.,Type=String,Description="Genotype">`,
		"##contig=<ID=chr1,length=248956422>",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsampleA",
		"chr2\t100\t.\t.\t.\t.\tPASS\tSV_type=DEL|DEL;Gene=BRCA1|BRCA1_tx2;Annotation_mode=full&split\tGT\t./.",
		"chr10\t500\t.\t.\t.\t.\tPASS\tSV_type=DUP;Gene=MYC;Annotation_mode=full\tGT\t./.",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 1, summary.Samples)
	assert.Equal(t, 2, summary.Groups)
	assert.Equal(t, 2, summary.Records)
}

func TestConvertFormatMapped(t *testing.T) {
	cfg := testConfig(t)
	cfg.VCFColumns.Format.Column = "FORMAT"
	input := writeInput(t, "AnnotSV_ID\tSV_chrom\tSV_start\tSamples_ID\tSV_type\tGene\tAnnotation_mode\tFORMAT\tsampleA\tsampleB\n"+
		"V1\tchr1\t100\tsampleA,sampleB\tDEL\tBRCA1\tfull\tGT:DP\t0/1:12\t1/1:30\n")

	conv, err := NewConverter(cfg, nil)
	require.NoError(t, err)

	var buf strings.Builder
	_, err = conv.Convert(input, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `##FORMAT=<ID=DP,Number=.,Type=String,Description="Imported from AnnotSV">`)
	assert.Contains(t, out, `##FORMAT=<ID=GT,Number=.,Type=String,Description="Genotype">`)
	assert.Contains(t, out, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsampleA\tsampleB")
	assert.Contains(t, out,
		"chr1\t100\t.\t.\t.\t.\tPASS\tSV_type=DEL;Gene=BRCA1;Annotation_mode=full\tGT:DP\t0/1:12\t1/1:30\n")
}

func TestConvertHelperAlt(t *testing.T) {
	cfg := testConfig(t)
	cfg.VCFColumns.Alt = config.ColumnSpec{
		Helper: &config.HelperSpec{Name: "get_sv_alt", Args: []string{"SV_type"}},
	}
	input := writeInput(t, "AnnotSV_ID\tSV_chrom\tSV_start\tSamples_ID\tSV_type\tGene\tAnnotation_mode\n"+
		"V1\tchr1\t100\tsampleA\tDEL\tBRCA1\tfull\n")

	conv, err := NewConverter(cfg, nil)
	require.NoError(t, err)

	var records []output.Record
	conv.SetRecordObserver(func(rec output.Record) { records = append(records, rec) })

	var buf strings.Builder
	_, err = conv.Convert(input, &buf)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "<DEL>", records[0].Alt)
}

func TestConvertObserverSeesOutputOrder(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "AnnotSV_ID\tSV_chrom\tSV_start\tSamples_ID\tSV_type\tGene\tAnnotation_mode\n"+
		"V2\tchr10\t500\tsampleA\tDUP\tMYC\tfull\n"+
		"V1\tchr2\t100\tsampleA\tDEL\tBRCA1\tfull\n")

	conv, err := NewConverter(cfg, nil)
	require.NoError(t, err)

	var order []string
	conv.SetRecordObserver(func(rec output.Record) { order = append(order, rec.GroupID) })

	var buf strings.Builder
	_, err = conv.Convert(input, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"V1", "V2"}, order)
}

func TestConvertMissingMappedColumn(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "AnnotSV_ID\tSV_start\tSamples_ID\tSV_type\tGene\tAnnotation_mode\n"+
		"V1\t100\tsampleA\tDEL\tBRCA1\tfull\n")

	conv, err := NewConverter(cfg, nil)
	require.NoError(t, err)

	var buf strings.Builder
	_, err = conv.Convert(input, &buf)
	var malformed *tsv.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "SV_chrom", malformed.Column)
}

func TestConvertNoDiscriminatorColumn(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "AnnotSV_ID\tSV_chrom\tSV_start\tSamples_ID\tSV_type\tGene\n"+
		"V1\tchr1\t100\tsampleA\tDEL\tBRCA1\n")

	conv, err := NewConverter(cfg, nil)
	require.NoError(t, err)

	var buf strings.Builder
	summary, err := conv.Convert(input, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Records)

	out := buf.String()
	assert.NotContains(t, out, "##INFO=")
	assert.Contains(t, out, "chr1\t100\t.\t.\t.\t.\tPASS\t\tGT\t./.\n")
}

func TestNewConverterValidation(t *testing.T) {
	t.Run("unsupported mode", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.General.Mode = "combined"
		_, err := NewConverter(cfg, nil)
		var uerr *UnsupportedModeError
		require.ErrorAs(t, err, &uerr)
	})

	t.Run("helper for INFO field", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.VCFColumns.Info["SV_len"] = config.ColumnSpec{
			Helper: &config.HelperSpec{Name: "get_sv_length", Args: []string{"SV_start", "SV_end"}},
		}
		_, err := NewConverter(cfg, nil)
		var ferr *UnsupportedFeatureError
		require.ErrorAs(t, err, &ferr)
		assert.Contains(t, ferr.Feature, "SV_len")
	})

	t.Run("unmapped chromosome", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.VCFColumns.Chrom = config.ColumnSpec{}
		_, err := NewConverter(cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "#CHROM")
	})

	t.Run("unknown helper name", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.VCFColumns.Alt = config.ColumnSpec{
			Helper: &config.HelperSpec{Name: "no_such_helper", Args: []string{"SV_type"}},
		}
		_, err := NewConverter(cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no_such_helper")
	})

	t.Run("nil profile", func(t *testing.T) {
		_, err := NewConverter(nil, nil)
		require.Error(t, err)
	})
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(testProfileYAML))
	require.NoError(t, err)
	return cfg
}

func testTable(t *testing.T, content string) *tsv.Table {
	t.Helper()
	table, err := tsv.Parse(strings.NewReader(content), 0)
	require.NoError(t, err)
	return table
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
