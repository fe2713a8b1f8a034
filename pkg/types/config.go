package types

// DocumentBackend identifies the tool that turns PDF pages into plain text.
type DocumentBackend string

const (
	BackendNative    DocumentBackend = "native"
	BackendPdftotext DocumentBackend = "pdftotext"
)

// OutputFormat selects the serialization of the record list.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ExtractionConfig holds the page-level parsing settings.
type ExtractionConfig struct {
	// Marker is the heading that separates the description from the trait
	// section (e.g. "Racial Bonuses and Drawbacks").
	Marker string `json:"marker" yaml:"marker" mapstructure:"marker"`

	// SummaryWords is how many leading description tokens form the summary (default 40).
	SummaryWords int `json:"summary_words" yaml:"summary_words" mapstructure:"summary_words"`

	// TitleMaxLen bounds the pre-colon length, in runes, of a trait title line (default 40).
	TitleMaxLen int `json:"title_max_len" yaml:"title_max_len" mapstructure:"title_max_len"`
}

// Config groups all settings for a conversion run.
type Config struct {
	ExtractionConfig `yaml:",inline" mapstructure:",squash"`

	// Entities is the ordered list of entity names, one per page.
	Entities []string `json:"entities" yaml:"entities" mapstructure:"entities"`

	// BaseOffset is the number of leading pages before the first entity page (default 2).
	BaseOffset int `json:"base_offset" yaml:"base_offset" mapstructure:"base_offset"`

	// Backend selects the PDF text backend: native or pdftotext.
	Backend DocumentBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Format selects the output format: json or yaml.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// UniqueSlugs suffixes repeated slugs with -2, -3, ... in entity order.
	UniqueSlugs bool `json:"unique_slugs" yaml:"unique_slugs" mapstructure:"unique_slugs"`

	// DBPath, when set, is the SQLite file the records are also indexed into.
	DBPath string `json:"db,omitempty" yaml:"db,omitempty" mapstructure:"db"`
}
