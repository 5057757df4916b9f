// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"os"
	"time"
)

// ConfigError reports an invalid or missing configuration value. It is the
// only error kind that aborts a run before any file is processed.
type ConfigError struct {
	// Field is the configuration field that failed validation.
	Field string
	// Reason describes what was wrong with the value.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout, which
	// matches the Go default; a hung request then stalls the whole batch.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// AIConfig holds shared settings for stages that call a chat-completions API.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API base, e.g. "https://api.siliconflow.cn/v1".
	// The client appends /chat/completions.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is the bearer token for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the model identifier, e.g. "deepseek-ai/DeepSeek-R1".
	Model string `json:"model" yaml:"model"`

	// MaxTokens caps the response length. Zero omits the field from requests.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// Validate checks that the API can actually be called.
func (c AIConfig) Validate() error {
	if c.BaseURL == "" {
		return &ConfigError{Field: "base-url", Reason: "API base URL is not set"}
	}
	if c.APIKey == "" {
		return &ConfigError{Field: "api-key", Reason: "API key is not set (flag, PAPERBATCH_AI_API_KEY, config file, or .secrets/api-key)"}
	}
	if c.Model == "" {
		return &ConfigError{Field: "model", Reason: "model identifier is not set"}
	}
	return nil
}

// SummarizeConfig holds settings for the summarize stage.
type SummarizeConfig struct {
	AIConfig `yaml:",inline"`

	// InputDir is scanned recursively for PDF files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// PromptBudget caps the extracted text embedded in a prompt, in runes
	// (default 65535). The cut is a silent prefix.
	PromptBudget int `json:"prompt_budget" yaml:"prompt_budget"`

	// Language is the reply language instruction in the prompt (default "en").
	Language string `json:"language" yaml:"language"`
}

// Validate checks the input directory and API settings before any work begins.
func (c SummarizeConfig) Validate() error {
	if err := checkDir("input-dir", c.InputDir); err != nil {
		return err
	}
	return c.AIConfig.Validate()
}

// RenameConfig holds settings for the rename stage.
type RenameConfig struct {
	// InputDir is scanned recursively for PDF files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// MinTitleLen and MaxTitleLen bound plausible title lines, in runes
	// (defaults 10 and 200).
	MinTitleLen int `json:"min_title_len" yaml:"min_title_len"`
	MaxTitleLen int `json:"max_title_len" yaml:"max_title_len"`

	// HeadingFontSize is the font size above which a span counts as a
	// heading rather than body text (default 11).
	HeadingFontSize float64 `json:"heading_font_size" yaml:"heading_font_size"`

	// UseMetadataTitle enables the document-info /Title heuristic.
	// Off by default: PDF metadata titles are frequently export junk
	// ("Microsoft Word - draft3.docx").
	UseMetadataTitle bool `json:"use_metadata_title" yaml:"use_metadata_title"`

	// WriteLog controls the per-run YAML rename log written to InputDir.
	WriteLog bool `json:"write_log" yaml:"write_log"`
}

// Validate checks the input directory before any work begins.
func (c RenameConfig) Validate() error {
	return checkDir("input-dir", c.InputDir)
}

// ReportConfig holds settings for the report aggregation stage.
type ReportConfig struct {
	AIConfig `yaml:",inline"`

	// InputDir is read non-recursively for Markdown summaries.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// ReportPrefix names generated reports and excludes prior ones from
	// the input set (default "research_report").
	ReportPrefix string `json:"report_prefix" yaml:"report_prefix"`

	// Language is the reply language instruction in the prompt (default "en").
	Language string `json:"language" yaml:"language"`
}

// Validate checks the input directory and API settings before any work begins.
func (c ReportConfig) Validate() error {
	if err := checkDir("input-dir", c.InputDir); err != nil {
		return err
	}
	return c.AIConfig.Validate()
}

// CatalogConfig holds settings for the run catalog.
type CatalogConfig struct {
	// Enabled controls whether runs are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DBPath overrides the catalog location
	// (default <input-dir>/.paperbatch/catalog.db).
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Summarize SummarizeConfig `json:"summarize" yaml:"summarize"`
	Rename    RenameConfig    `json:"rename" yaml:"rename"`
	Report    ReportConfig    `json:"report" yaml:"report"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
}

// checkDir verifies that path names an existing directory.
func checkDir(field, path string) error {
	if path == "" {
		return &ConfigError{Field: field, Reason: "directory is not set"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConfigError{Field: field, Reason: fmt.Sprintf("directory %s does not exist", path)}
		}
		return &ConfigError{Field: field, Reason: fmt.Sprintf("cannot stat %s: %v", path, err)}
	}
	if !info.IsDir() {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("%s is not a directory", path)}
	}
	return nil
}
