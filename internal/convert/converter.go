// Package convert implements the annotation-table-to-VCF conversion
// pipeline: load and sort the table, resolve samples, merge each variant
// group's full and split rows, synthesize the header, and emit one record
// per group.
package convert

import (
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/helpers"
	"github.com/Rapsssito/AnnotSV/internal/output"
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

// Converter drives one conversion from annotation table to VCF document.
type Converter struct {
	cfg      *config.Config
	registry *helpers.Registry
	logger   *zap.Logger
	observer func(output.Record)
	now      func() time.Time
}

// NewConverter validates the profile against the engine's capabilities and
// returns a ready converter. Mode and feature violations surface here,
// before any input is read.
func NewConverter(cfg *config.Config, registry *helpers.Registry) (*Converter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil profile")
	}
	if registry == nil {
		registry = helpers.NewRegistry()
	}

	if cfg.General.Mode != config.ModeFullSplit {
		return nil, &UnsupportedModeError{Mode: cfg.General.Mode}
	}

	if !isPlainColumn(cfg.VCFColumns.Chrom) {
		return nil, fmt.Errorf("profile: %s must map to a table column", config.RoleChrom)
	}
	if !isPlainColumn(cfg.VCFColumns.Pos) {
		return nil, fmt.Errorf("profile: %s must map to a table column", config.RolePos)
	}
	if !isPlainColumn(cfg.VCFColumns.Sample) {
		return nil, fmt.Errorf("profile: %s must map to a table column", config.RoleSample)
	}
	if cfg.VCFColumns.Format.IsHelper() {
		return nil, fmt.Errorf("profile: %s must map to a table column or stay unmapped", config.RoleFormat)
	}
	if !isPlainColumn(cfg.VCFColumns.InfoSpec(config.InfoKeyVariantGroupID)) {
		return nil, fmt.Errorf("profile: INFO.%s must map to the variant group identifier column", config.InfoKeyVariantGroupID)
	}
	for key, spec := range cfg.VCFColumns.Info {
		if spec.IsHelper() {
			return nil, &UnsupportedFeatureError{Feature: fmt.Sprintf("helper function for INFO field %q", key)}
		}
	}
	for _, rs := range cfg.VCFColumns.MainRoles() {
		if rs.Spec.IsHelper() {
			if _, ok := registry.Lookup(rs.Spec.Helper.Name); !ok {
				return nil, fmt.Errorf("profile: unknown helper function %q for %s", rs.Spec.Helper.Name, rs.Role)
			}
		}
	}

	return &Converter{
		cfg:      cfg,
		registry: registry,
		logger:   zap.NewNop(),
		now:      time.Now,
	}, nil
}

// SetLogger replaces the no-op default logger.
func (c *Converter) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetRecordObserver registers a callback invoked for every record written,
// in output order.
func (c *Converter) SetRecordObserver(fn func(output.Record)) {
	c.observer = fn
}

// SetClock overrides the wall clock used for the header's fileDate line.
func (c *Converter) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// Summary reports what one conversion run processed.
type Summary struct {
	Rows    int
	Samples int
	Groups  int
	Records int
}

// Convert reads the annotation table at inputPath and writes a complete
// VCF document to w.
func (c *Converter) Convert(inputPath string, w io.Writer) (*Summary, error) {
	phase := time.Now()
	table, err := tsv.Load(inputPath, c.cfg.General.SkipRows)
	if err != nil {
		return nil, fmt.Errorf("load annotation table: %w", err)
	}
	c.logger.Info("loaded annotation table",
		zap.String("path", inputPath),
		zap.Int("rows", table.NumRows()),
		zap.Int("columns", table.NumColumns()))
	c.logger.Debug("load complete", zap.Duration("elapsed", time.Since(phase)))

	if err := c.checkColumns(table); err != nil {
		return nil, err
	}

	chromCol := c.cfg.VCFColumns.Chrom.Column
	posCol := c.cfg.VCFColumns.Pos.Column
	if err := table.SortByChromPos(chromCol, posCol); err != nil {
		return nil, err
	}

	samples, err := ResolveSamples(table, c.cfg)
	if err != nil {
		return nil, err
	}
	c.logger.Info("resolved samples", zap.Strings("samples", samples))

	engine, err := NewMergeEngine(c.cfg, table, samples, c.logger)
	if err != nil {
		return nil, err
	}

	idCol := c.cfg.VCFColumns.InfoSpec(config.InfoKeyVariantGroupID).Column
	groups, err := GroupRows(table, idCol)
	if err != nil {
		return nil, err
	}

	phase = time.Now()
	// Merge in identifier order for deterministic logs; the key-set union
	// keeps first-seen order for the header.
	ordered := make([]VariantGroup, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	merged := make(map[string]*MergedAnnotation, len(groups))
	var infoKeys []string
	seenKey := make(map[string]bool)
	for _, group := range ordered {
		ann, err := engine.Merge(group)
		if err != nil {
			return nil, fmt.Errorf("merge annotations: %w", err)
		}
		merged[group.ID] = ann
		for _, key := range ann.Keys() {
			if !seenKey[key] {
				seenKey[key] = true
				infoKeys = append(infoKeys, key)
			}
		}
	}
	c.logger.Info("merged variant groups",
		zap.Int("groups", len(groups)),
		zap.Int("info_keys", len(infoKeys)))
	c.logger.Debug("merge complete", zap.Duration("elapsed", time.Since(phase)))

	synth := output.NewHeaderSynthesizer(c.cfg)
	synth.SetClock(c.now)
	headerLines, err := synth.Synthesize(inputPath, table, samples, infoKeys)
	if err != nil {
		return nil, fmt.Errorf("synthesize header: %w", err)
	}

	writer := output.NewVCFWriter(w)
	if err := writer.WriteHeader(headerLines); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	phase = time.Now()
	// Records are emitted in natural chromosome order; within a
	// chromosome, groups keep first-appearance order.
	if err := table.SortNatural(chromCol); err != nil {
		return nil, err
	}
	emitGroups, err := GroupRows(table, idCol)
	if err != nil {
		return nil, err
	}

	records := 0
	for _, group := range emitGroups {
		ann := merged[group.ID]
		if ann == nil {
			ann = NewMergedAnnotation()
		}
		rec, err := c.buildRecord(group, ann, samples)
		if err != nil {
			return nil, err
		}
		if err := writer.WriteRecord(rec); err != nil {
			return nil, fmt.Errorf("write record: %w", err)
		}
		if c.observer != nil {
			c.observer(rec)
		}
		records++
	}

	if err := writer.Flush(); err != nil {
		return nil, fmt.Errorf("flush output: %w", err)
	}
	c.logger.Debug("emit complete", zap.Duration("elapsed", time.Since(phase)))
	c.logger.Info("conversion complete", zap.Int("records", records))

	return &Summary{
		Rows:    table.NumRows(),
		Samples: len(samples),
		Groups:  len(groups),
		Records: records,
	}, nil
}

// checkColumns verifies that every plainly mapped column (and every helper
// argument column) exists before any work starts.
func (c *Converter) checkColumns(table *tsv.Table) error {
	for _, rs := range c.cfg.VCFColumns.MainRoles() {
		spec := rs.Spec
		if spec.IsHelper() {
			for _, arg := range spec.Helper.Args {
				if !table.HasColumn(arg) {
					return &tsv.MalformedInputError{
						Column: arg,
						Detail: fmt.Sprintf("needed by helper %s for %s", spec.Helper.Name, rs.Role),
					}
				}
			}
			continue
		}
		if spec.Column != "" && !table.HasColumn(spec.Column) {
			return &tsv.MalformedInputError{Column: spec.Column}
		}
	}
	if col := c.cfg.VCFColumns.Format.Column; col != "" && !table.HasColumn(col) {
		return &tsv.MalformedInputError{Column: col}
	}
	return nil
}

func isPlainColumn(spec config.ColumnSpec) bool {
	return spec.Column != "" && spec.Helper == nil
}
