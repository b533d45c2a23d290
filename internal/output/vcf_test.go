package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVCFWriterDocument(t *testing.T) {
	var buf strings.Builder
	w := NewVCFWriter(&buf)

	header := []string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsampleA",
	}
	require.NoError(t, w.WriteHeader(header))

	require.NoError(t, w.WriteRecord(Record{
		GroupID: "V1",
		Chrom:   "chr1",
		Pos:     "100",
		ID:      ".",
		Ref:     ".",
		Alt:     "<DEL>",
		Qual:    ".",
		Filter:  "PASS",
		Info:    "SV_type=DEL;Annotation_mode=full",
		Format:  "GT",
		Samples: []string{"0/1"},
	}))
	require.NoError(t, w.Flush())

	want := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsampleA\n" +
		"chr1\t100\t.\t.\t<DEL>\t.\tPASS\tSV_type=DEL;Annotation_mode=full\tGT\t0/1\n"
	assert.Equal(t, want, buf.String())
}

func TestVCFWriterEmptyInfo(t *testing.T) {
	var buf strings.Builder
	w := NewVCFWriter(&buf)

	require.NoError(t, w.WriteRecord(Record{
		Chrom:   "chr1",
		Pos:     "100",
		ID:      ".",
		Ref:     ".",
		Alt:     ".",
		Qual:    ".",
		Filter:  "PASS",
		Format:  "GT",
		Samples: []string{"./."},
	}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "chr1\t100\t.\t.\t.\t.\tPASS\t\tGT\t./.\n", buf.String())
}

func TestVCFWriterMultipleSamples(t *testing.T) {
	var buf strings.Builder
	w := NewVCFWriter(&buf)

	require.NoError(t, w.WriteRecord(Record{
		Chrom:   "chr2",
		Pos:     "500",
		ID:      ".",
		Ref:     "N",
		Alt:     "<DUP>",
		Qual:    ".",
		Filter:  "PASS",
		Info:    "SV_type=DUP",
		Format:  "GT:DP",
		Samples: []string{"0/1:12", "1/1:30"},
	}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "chr2\t500\t.\tN\t<DUP>\t.\tPASS\tSV_type=DUP\tGT:DP\t0/1:12\t1/1:30\n", buf.String())
}
