package model

import "time"

// Config holds the complete scicheck configuration
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" json:"http"`
	Cache     CacheConfig     `yaml:"cache" json:"cache"`
	LLM       LLMConfig       `yaml:"llm" json:"llm"`
	Scholar   ScholarConfig   `yaml:"scholar" json:"scholar"`
	Analysis  AnalysisConfig  `yaml:"analysis" json:"analysis"`
	LinkCheck LinkCheckConfig `yaml:"link_check" json:"link_check"`
	Output    OutputConfig    `yaml:"output" json:"output"`
}

// HTTPConfig controls article fetching and outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// CacheConfig controls the session-scoped article cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// LLMConfig holds language model client configuration
type LLMConfig struct {
	// Provider name: "openrouter" or "openai"
	Provider string `yaml:"provider" json:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" json:"model"`

	// APIKey is read from the environment at startup and never
	// validated eagerly; a blank key fails on the first remote call
	APIKey string `yaml:"-" json:"-"`

	// BaseURL overrides the provider endpoint (useful for tests)
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Timeout for API requests
	Timeout int `yaml:"timeout" json:"timeout"` // seconds

	// Temperature for completions (extraction always runs at 0)
	Temperature float32 `yaml:"temperature" json:"temperature"`
}

// ScholarConfig holds the scholarly-search client configuration
type ScholarConfig struct {
	CrossrefURL string `yaml:"crossref_url" json:"crossref_url"`
	COREURL     string `yaml:"core_url" json:"core_url"`

	// Rows caps the results per client
	Rows int `yaml:"rows" json:"rows"`

	// Mailto identifies us to the Crossref polite pool
	Mailto string `yaml:"mailto" json:"mailto"`

	// COREURLFields is the ordered field precedence for picking a result
	// URL out of a CORE record; the upstream schema is unstable, so the
	// order is configuration rather than code
	COREURLFields []string `yaml:"core_url_fields" json:"core_url_fields"`
}

// AnalysisConfig enumerates the pipeline toggles
type AnalysisConfig struct {
	Focus         string `yaml:"focus" json:"focus"`
	WithEvidence  bool   `yaml:"with_evidence" json:"with_evidence"`
	WithQuestions bool   `yaml:"with_questions" json:"with_questions"`
	WithReports   bool   `yaml:"with_reports" json:"with_reports"`
}

// LinkCheckConfig controls post-run verdict source checking
type LinkCheckConfig struct {
	Enabled           bool          `yaml:"enabled" json:"enabled"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	Workers           int           `yaml:"workers" json:"workers"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" json:"burst_size"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "SciCheck/0.1 (+https://github.com/ppiankov/scicheck)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:    "openrouter",
			Model:       "openai/gpt-3.5-turbo",
			Timeout:     60,
			Temperature: 0,
		},
		Scholar: ScholarConfig{
			CrossrefURL:   "https://api.crossref.org/works",
			COREURL:       "https://core.ac.uk/api-v2/articles/search",
			Rows:          3,
			Mailto:        "scicheck@example.com",
			COREURLFields: []string{"downloadUrl", "urls", "fulltextUrls"},
		},
		Analysis: AnalysisConfig{
			Focus: string(FocusGeneral),
		},
		LinkCheck: LinkCheckConfig{
			Enabled:           false,
			Timeout:           10 * time.Second,
			Workers:           10,
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
