package config

import "embed"

// defaultsFS embeds the built-in configuration.
//
//go:embed default.yaml
var defaultsFS embed.FS

const defaultFile = "default.yaml"
