package detect

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/samber/lo"

	"github.com/dataveil/dataveil/src/tabular"
)

const (
	DEFAULT_SAMPLE_SIZE         = 100
	DEFAULT_PATTERN_MATCH_RATIO = 0.7
	DEFAULT_CARDINALITY_RATIO   = 0.8
)

// Config holds the classifier thresholds. They are configuration, not
// constants, so the heuristics stay tunable against edge-size datasets.
type Config struct {
	// SampleSize caps how many non-null values the pattern heuristic inspects per column.
	SampleSize int
	// PatternMatchRatio is the fraction of sampled values that must fully
	// match a regex family before the column is flagged.
	PatternMatchRatio float64
	// CardinalityRatio is the distinct/total ratio above which a string
	// column is flagged as a likely identifier.
	CardinalityRatio float64
}

func DefaultConfig() Config {
	return Config{
		SampleSize:        DEFAULT_SAMPLE_SIZE,
		PatternMatchRatio: DEFAULT_PATTERN_MATCH_RATIO,
		CardinalityRatio:  DEFAULT_CARDINALITY_RATIO,
	}
}

// ColumnFinding is one flagged column with every reason that fired.
type ColumnFinding struct {
	ColumnName string
	Reasons    []string
}

// Result is the advisory output of one classification pass. It is ephemeral:
// nothing here is persisted and the dataset is never modified.
type Result struct {
	Findings []ColumnFinding
}

// ColumnNames returns the flagged columns in dataset order.
func (r *Result) ColumnNames() []string {
	return lo.Map(r.Findings, func(f ColumnFinding, _ int) string { return f.ColumnName })
}

func (r *Result) IsEmpty() bool {
	return len(r.Findings) == 0
}

type Classifier struct {
	config Config
}

func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify runs the three heuristics over every column and reports each
// column for which at least one fired. Pattern and cardinality checks apply
// to string-typed columns only.
func (c *Classifier) Classify(ds *tabular.Dataset) *Result {
	result := &Result{}
	for _, column := range ds.Columns() {
		var reasons []string

		if category, ok := c.checkColumnName(column.Name); ok {
			reasons = append(reasons, fmt.Sprintf("name keyword (%s)", category))
		}

		if column.IsStringTyped() {
			reasons = append(reasons, c.checkDataPatterns(column)...)

			if distinct, total, ok := c.checkHighCardinality(column); ok {
				reasons = append(reasons, fmt.Sprintf("high uniqueness (%d/%d unique)", distinct, total))
			}
		}

		if len(reasons) > 0 {
			log.Infof("column %q flagged sensitive: %v", column.Name, reasons)
			result.Findings = append(result.Findings, ColumnFinding{ColumnName: column.Name, Reasons: reasons})
		}
	}
	return result
}

// checkColumnName normalizes the name and tests substring membership against
// the keyword taxonomy. Only the first matching category is reported.
func (c *Classifier) checkColumnName(columnName string) (string, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(columnName), " ", "_")
	for _, entry := range sensitiveKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.category, true
			}
		}
	}
	return "", false
}

// checkDataPatterns samples up to SampleSize non-null values and evaluates
// all four regex families independently, returning a reason per family whose
// full-match fraction exceeds PatternMatchRatio.
func (c *Classifier) checkDataPatterns(column *tabular.Column) []string {
	sample := column.NonNullValues()
	if len(sample) == 0 {
		return nil
	}
	if len(sample) > c.config.SampleSize {
		sample = sample[:c.config.SampleSize]
	}

	var reasons []string
	for _, family := range patternFamilies {
		matched := lo.CountBy(sample, family.matches)
		if float64(matched)/float64(len(sample)) > c.config.PatternMatchRatio {
			reasons = append(reasons, fmt.Sprintf("data pattern (%s)", family.label))
		}
	}
	return reasons
}

// checkHighCardinality compares distinct non-null count against total row
// count. High ratios suggest an identifier column.
func (c *Classifier) checkHighCardinality(column *tabular.Column) (int, int, bool) {
	total := len(column.Cells)
	if total == 0 {
		return 0, 0, false
	}
	distinct := len(column.DistinctNonNullValues())
	return distinct, total, float64(distinct)/float64(total) > c.config.CardinalityRatio
}
