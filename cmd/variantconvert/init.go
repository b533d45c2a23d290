package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// starterProfile is the builtin conversion profile for AnnotSV annotated
// TSV output. `variantconvert init` writes it to the profile directory as
// a starting point for site-specific tuning.
const starterProfile = `# Conversion profile for AnnotSV annotated TSV output.
#
# VCF_COLUMNS maps each VCF field to the table column that produces its
# value. A field may also be computed by a helper function, written as
# ["HELPER_FUNCTION", <name>, <argument columns>...].
GENERAL:
  origin: AnnotSV
  mode: full&split
  skip_rows: 0
  default_genotype: ./.

VCF_COLUMNS:
  "#CHROM": SV_chrom
  POS: SV_start
  ID: ""
  REF: ""
  ALT: ["HELPER_FUNCTION", get_sv_alt, SV_type]
  QUAL: ""
  FILTER: ""
  INFO:
    AnnotSV_ID: AnnotSV_ID
    SV_type: SV_type
    Annotation_mode: Annotation_mode
  FORMAT: FORMAT
  SAMPLE: Samples_ID

COLUMNS_DESCRIPTION:
  ALT:
    "<DEL>":
      Description: Deletion
    "<DUP>":
      Description: Duplication
    "<INS>":
      Description: Insertion
    "<INV>":
      Description: Inversion
  INFO:
    SV_type:
      Description: Type of structural variant
    SV_length:
      Description: Length of the structural variant
      Type: Integer
    Annotation_mode:
      Description: Annotation mode of the merged rows
    Gene_name:
      Description: Gene symbols overlapped by the variant
    ACMG_class:
      Description: ACMG classification of the variant
  FORMAT:
    GT:
      Description: Genotype
    DP:
      Description: Read depth
      Type: Integer

GENOME:
  assembly: GRCh38
  vcf_header:
    - "##reference=GRCh38"
`

func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ExitOnError)

	var (
		dir   string
		force bool
	)

	fs.StringVar(&dir, "dir", "", "Profile directory (default: ~/.variantconvert/configs)")
	fs.BoolVar(&force, "force", false, "Overwrite an existing profile")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Write the builtin AnnotSV conversion profile.

Usage:
  variantconvert init [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Write the profile to the default directory
  variantconvert init

  # Write to a custom directory
  variantconvert init --dir /data/profiles

The default directory can also be set persistently:
  variantconvert config set convert.config_dir /data/profiles
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	initViper()
	if dir == "" {
		dir = viper.GetString("convert.config_dir")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine home directory: %v\n", err)
			return ExitError
		}
		dir = filepath.Join(home, ".variantconvert", "configs")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create directory %s: %v\n", dir, err)
		return ExitError
	}

	dest := filepath.Join(dir, "annotsv.yaml")
	if _, err := os.Stat(dest); err == nil && !force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", dest)
		return ExitError
	}

	if err := os.WriteFile(dest, []byte(starterProfile), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing profile: %v\n", err)
		return ExitError
	}

	fmt.Printf("Wrote starter profile!\n")
	fmt.Printf("  Profile: %s\n\n", dest)
	fmt.Printf("To convert an AnnotSV table, run:\n")
	fmt.Printf("  variantconvert convert -i annotated.tsv -o out.vcf -c %s\n", dest)

	return ExitSuccess
}
