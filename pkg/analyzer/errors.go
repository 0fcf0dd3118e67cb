package analyzer

import "fmt"

// ConfigError reports a configuration that cannot be analyzed with, such as a
// malformed exclude pattern or an out of range setting
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
