package rule

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/log2seq/log2seq-go/internal/safefile"
)

const (
	// MaxRuleFileSize is the largest rule file Load and LoadFile accept.
	MaxRuleFileSize = 1 * 1024 * 1024 // 1 MB

	// MaxPatternLength bounds a single match pattern in a YAML rule file.
	MaxPatternLength = 512

	// MaxRuleCount bounds the number of rules in a YAML rule file.
	MaxRuleCount = 1000

	// SupportedVersion is the only YAML rule file version understood.
	SupportedVersion = 1
)

// File is the YAML rule file format.
//
//	version: 1
//	rules:
//	  - title: access
//	    match: 'Component1 func:'
//	    src: Client
//	    dst: Web Server
type File struct {
	Version int    `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Load reads and validates a YAML rule file.
// Errors never include the file path.
func Load(path string) (*File, error) {
	data, err := safefile.ReadFile(path, MaxRuleFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", safefile.SanitizePathError(err))
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a YAML rule file held in memory.
func LoadBytes(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("rule file is empty")
	}
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile loads rules from path, choosing the format by extension:
// .yaml and .yml files go through Load, anything else is parsed as CSV.
// CSV files are parsed leniently, exactly like rule text passed to [Parse].
func LoadFile(path string) ([]Rule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := Load(path)
		if err != nil {
			return nil, err
		}
		return f.Rules, nil
	}

	data, err := safefile.ReadFile(path, MaxRuleFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", safefile.SanitizePathError(err))
	}
	return Parse(string(data)), nil
}

// Validate checks the version, the rule count and that every rule has all
// four fields with a pattern no longer than MaxPatternLength. Patterns are
// not compiled here; a bad pattern is reported by the matcher.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}
	if len(f.Rules) == 0 {
		return &ValidationError{
			Field:   "rules",
			Message: "at least one rule is required",
		}
	}
	if len(f.Rules) > MaxRuleCount {
		return &ValidationError{
			Field:   "rules",
			Message: fmt.Sprintf("too many rules (%d), maximum allowed is %d", len(f.Rules), MaxRuleCount),
		}
	}

	for i, r := range f.Rules {
		for _, field := range Fields {
			if r.Get(field) == "" {
				return &RuleError{
					Index:   i,
					Title:   r.Title,
					Field:   string(field),
					Message: string(field) + " is required",
				}
			}
		}
		if len(r.Match) > MaxPatternLength {
			return &RuleError{
				Index:   i,
				Title:   r.Title,
				Field:   string(FieldMatch),
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(r.Match), MaxPatternLength),
			}
		}
	}
	return nil
}
