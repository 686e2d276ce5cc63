package types

// Proportions is the share of the sample target allotted to each
// classification partition. Values are fractions in [0, 1] and must sum
// to at most 1; the sum may be below 1 when a caller wants headroom.
type Proportions struct {
	Illicit float64 `json:"illicit" yaml:"illicit"`
	Licit   float64 `json:"licit" yaml:"licit"`
	Unknown float64 `json:"unknown" yaml:"unknown"`
}

// Caps holds optional absolute per-class node limits for sampling.
// Zero means no cap for that class.
type Caps struct {
	Illicit int `json:"illicit" yaml:"illicit"`
	Licit   int `json:"licit" yaml:"licit"`
	Unknown int `json:"unknown" yaml:"unknown"`
}

// Config is the caller-supplied configuration surface of the pipeline.
// There is no persisted pipeline state; every load is independent and
// bounded only by these values.
type Config struct {
	// MaxSampleNodes bounds the node count of a sampled graph. Zero
	// disables sampling.
	MaxSampleNodes int `json:"max_sample_nodes" yaml:"max_sample_nodes"`

	// ClassProportions splits MaxSampleNodes across the three classes.
	ClassProportions Proportions `json:"class_proportions" yaml:"class_proportions"`

	// PerClassHardCaps are absolute ceilings applied after proportions.
	PerClassHardCaps Caps `json:"per_class_hard_caps" yaml:"per_class_hard_caps"`

	// MaxExaminationRows bounds the sampler's partition scan. Zero means
	// scan everything. A ceiling below the node count can under-represent
	// rare classes appearing late in the file; that is accepted behavior.
	MaxExaminationRows int `json:"max_examination_rows" yaml:"max_examination_rows"`

	// MaxInputSizeBytes rejects any input stream larger than this before
	// parsing begins.
	MaxInputSizeBytes int64 `json:"max_input_size_bytes" yaml:"max_input_size_bytes"`
}

// Default limits, sized for interactive review of the Elliptic dataset.
const (
	DefaultMaxSampleNodes     = 2000
	DefaultMaxExaminationRows = 50000
	DefaultMaxInputSizeBytes  = 256 << 20 // 256 MiB
)

// DefaultConfig returns the configuration used when the caller supplies
// nothing: a 2000-node sample weighted toward the labeled classes.
func DefaultConfig() Config {
	return Config{
		MaxSampleNodes:     DefaultMaxSampleNodes,
		ClassProportions:   Proportions{Illicit: 0.2, Licit: 0.3, Unknown: 0.5},
		PerClassHardCaps:   Caps{Illicit: 500, Licit: 750, Unknown: 1500},
		MaxExaminationRows: DefaultMaxExaminationRows,
		MaxInputSizeBytes:  DefaultMaxInputSizeBytes,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	for _, p := range []float64{c.ClassProportions.Illicit, c.ClassProportions.Licit, c.ClassProportions.Unknown} {
		if p < 0 || p > 1 {
			return ErrProportionRange
		}
	}
	sum := c.ClassProportions.Illicit + c.ClassProportions.Licit + c.ClassProportions.Unknown
	// Small epsilon so 0.2+0.3+0.5 style sums survive float representation.
	if sum > 1.0000001 {
		return ErrProportionSum
	}
	if c.PerClassHardCaps.Illicit < 0 || c.PerClassHardCaps.Licit < 0 || c.PerClassHardCaps.Unknown < 0 {
		return ErrHardCapNegative
	}
	if c.MaxSampleNodes < 0 {
		return ErrSampleMaxNegative
	}
	if c.MaxExaminationRows < 0 {
		return ErrExamineRowsInvalid
	}
	if c.MaxInputSizeBytes <= 0 {
		return ErrInputSizeInvalid
	}
	return nil
}
