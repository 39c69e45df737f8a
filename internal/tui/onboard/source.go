package onboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/secconsole/internal/wizard"
	"gopkg.in/yaml.v3"
)

// Shared data keys written by the onboarding panels.
const (
	KeyName        = "name"
	KeyID          = "id"
	KeyKind        = "kind"
	KeyDescription = "description"
)

// SourceKind is a log source type offered by the select step.
type SourceKind struct {
	ID    string
	Label string
	Hint  string
}

// SourceKinds lists the supported source types in display order.
var SourceKinds = []SourceKind{
	{ID: "aws-cloudtrail", Label: "AWS CloudTrail", Hint: "management and data events from an S3 trail"},
	{ID: "okta", Label: "Okta System Log", Hint: "sign-in and admin events via the Okta API"},
	{ID: "gcp-audit", Label: "GCP Audit Logs", Hint: "admin activity exported through Pub/Sub"},
	{ID: "azure-activity", Label: "Azure Activity Log", Hint: "subscription events from an Event Hub"},
	{ID: "syslog", Label: "Syslog", Hint: "RFC 5424 messages over TCP or UDP"},
	{ID: "s3-generic", Label: "Generic S3 bucket", Hint: "JSON lines objects under a prefix"},
}

// kindByID returns the source kind with the given ID.
func kindByID(id string) (SourceKind, bool) {
	for _, k := range SourceKinds {
		if k.ID == id {
			return k, true
		}
	}
	return SourceKind{}, false
}

// Source is the log source definition produced by a completed onboarding.
type Source struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Kind        string    `yaml:"kind"`
	Description string    `yaml:"description,omitempty"`
	CreatedAt   time.Time `yaml:"created_at,omitempty"`
}

// SourceFromData builds a source from wizard shared data. Missing fields
// are left empty; Validate reports them.
func SourceFromData(data wizard.Data) Source {
	str := func(key string) string {
		s, _ := data[key].(string)
		return s
	}

	src := Source{
		ID:          str(KeyID),
		Name:        strings.TrimSpace(str(KeyName)),
		Kind:        str(KeyKind),
		Description: strings.TrimSpace(str(KeyDescription)),
	}
	if src.ID == "" && src.Name != "" {
		src.ID = slug.Make(src.Name)
	}
	return src
}

// Validate checks that a source can be written.
func (s Source) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if s.ID == "" {
		return fmt.Errorf("source name %q has no usable characters", s.Name)
	}
	if _, ok := kindByID(s.Kind); !ok {
		return fmt.Errorf("unknown source kind %q", s.Kind)
	}
	return nil
}

// YAML renders the source the way it is written to disk.
func (s Source) YAML() string {
	data, err := yaml.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}

// WriteSource writes src to <dir>/<id>.yaml and returns the path.
func WriteSource(dir string, src Source) (string, error) {
	if err := src.Validate(); err != nil {
		return "", err
	}
	if src.CreatedAt.IsZero() {
		src.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating sources directory: %w", err)
	}

	data, err := yaml.Marshal(src)
	if err != nil {
		return "", fmt.Errorf("marshaling source: %w", err)
	}

	path := filepath.Join(dir, src.ID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing source file: %w", err)
	}
	return path, nil
}
