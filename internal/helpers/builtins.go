package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

// missing is the placeholder annotation tables use for absent values.
const missing = "."

// builtins are the helper functions available to every profile.
var builtins = map[string]Func{
	"get_sv_alt":       GetSVAlt,
	"get_sv_end":       GetSVEnd,
	"get_sv_length":    GetSVLength,
	"get_chr_number":   GetChrNumber,
	"get_first_sample": GetFirstSample,
}

// GetSVAlt turns an SV type such as "DEL" into the symbolic VCF allele
// "<DEL>". Values already in angle brackets and placeholders pass through.
func GetSVAlt(args ...string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("get_sv_alt: expected 1 argument, got %d", len(args))
	}
	svType := strings.TrimSpace(args[0])
	if svType == "" || svType == missing {
		return missing, nil
	}
	if strings.HasPrefix(svType, "<") && strings.HasSuffix(svType, ">") {
		return svType, nil
	}
	return "<" + svType + ">", nil
}

// GetSVEnd normalizes an SV end position to a plain integer string.
// Spreadsheet round-trips leave AnnotSV coordinates as "12345.0".
func GetSVEnd(args ...string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("get_sv_end: expected 1 argument, got %d", len(args))
	}
	end := strings.TrimSpace(args[0])
	if end == "" || end == missing {
		return missing, nil
	}
	f, err := strconv.ParseFloat(end, 64)
	if err != nil {
		return "", fmt.Errorf("get_sv_end: invalid end position %q", end)
	}
	return strconv.FormatInt(int64(f), 10), nil
}

// GetSVLength computes the variant length from its start and end positions.
func GetSVLength(args ...string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("get_sv_length: expected 2 arguments (start, end), got %d", len(args))
	}
	start, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return "", fmt.Errorf("get_sv_length: invalid start position %q", args[0])
	}
	end, err := strconv.ParseInt(strings.TrimSpace(args[1]), 10, 64)
	if err != nil {
		return "", fmt.Errorf("get_sv_length: invalid end position %q", args[1])
	}
	return strconv.FormatInt(end-start, 10), nil
}

// GetChrNumber strips a leading "chr" prefix from a chromosome name.
func GetChrNumber(args ...string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("get_chr_number: expected 1 argument, got %d", len(args))
	}
	chrom := strings.TrimSpace(args[0])
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		return chrom[3:], nil
	}
	return chrom, nil
}

// GetFirstSample returns the first name from a comma-separated sample list.
func GetFirstSample(args ...string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("get_first_sample: expected 1 argument, got %d", len(args))
	}
	samples := strings.TrimSpace(args[0])
	if samples == "" {
		return missing, nil
	}
	first, _, _ := strings.Cut(samples, ",")
	return first, nil
}
