// Package job defines the job posting record consumed by the matching engine.
package job

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Posting is a normalized job posting. Description may contain markup.
// Requirements, when present, are treated as higher-priority keyword candidates
// than terms found in the free text.
type Posting struct {
	Title        string   `json:"title" mapstructure:"title"`
	Company      string   `json:"company" mapstructure:"company"`
	Location     string   `json:"location,omitempty" mapstructure:"location"`
	Description  string   `json:"description,omitempty" mapstructure:"description"`
	Requirements []string `json:"requirements,omitempty" mapstructure:"requirements"`
	Source       string   `json:"source,omitempty" mapstructure:"source"`
}

// SourceFile tags postings read from a local file.
const SourceFile = "file"

// IsEmpty reports whether the posting carries no text a keyword can be drawn from.
func (p Posting) IsEmpty() bool {
	if strings.TrimSpace(p.Title) != "" || strings.TrimSpace(p.Description) != "" {
		return false
	}
	for _, r := range p.Requirements {
		if strings.TrimSpace(r) != "" {
			return false
		}
	}
	return true
}

// LoadFile reads a posting from a YAML, JSON or TOML file. The format is picked
// from the file extension.
func LoadFile(path string) (*Posting, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("job file path is empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading job file %q: %w", path, err)
	}

	var p Posting
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decoding job file %q: %w", path, err)
	}

	if p.Source == "" {
		p.Source = SourceFile
	}

	return &p, nil
}
