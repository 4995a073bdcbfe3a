package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default application configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultRequestConfigurationJSON contains the out-of-the-box RequestConfiguration.
//
//go:embed defaults/request_configuration.json
var DefaultRequestConfigurationJSON []byte
