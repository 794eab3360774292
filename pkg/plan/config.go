package plan

import (
	"errors"
	"fmt"
)

// Source kinds selectable through PLANS_SOURCE.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// SourceConfig selects where the catalog is loaded from.
type SourceConfig struct {
	Kind     string `env:"PLANS_SOURCE" envDefault:"builtin"`
	File     string `env:"PLANS_FILE"`
	S3Bucket string `env:"PLANS_S3_BUCKET"`
	S3Key    string `env:"PLANS_S3_KEY" envDefault:"plans.yaml"`
}

// Validate checks that the selected kind has the settings it needs.
func (c *SourceConfig) Validate() error {
	switch c.Kind {
	case SourceBuiltin, SourcePostgres:
		return nil
	case SourceFile:
		if c.File == "" {
			return errors.New("PLANS_FILE is required for the file source")
		}
		_, err := FormatFromPath(c.File)
		return err
	case SourceS3:
		if c.S3Bucket == "" || c.S3Key == "" {
			return errors.New("PLANS_S3_BUCKET and PLANS_S3_KEY are required for the s3 source")
		}
		_, err := FormatFromPath(c.S3Key)
		return err
	}
	return fmt.Errorf("PLANS_SOURCE: unknown source %q", c.Kind)
}
