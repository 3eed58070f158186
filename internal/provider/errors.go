package provider

import "fmt"

// ConfigError names a missing required setting. It is raised before any
// gateway call and is never retried.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required setting: %s", e.Setting)
}
