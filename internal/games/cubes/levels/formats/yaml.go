package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return Level{}, ParseError{Code: CodeSyntax, Message: err.Error()}
	}
	if err := Validate(generic); err != nil {
		return Level{}, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Level{}, ParseError{Code: CodeSyntax, Message: err.Error()}
	}
	return doc.Build()
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".toml", ".yaml", ".yml"}
}

// Supported reports whether a file name has a level extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Parse routes data to the parser for the file name's extension.
func Parse(name string, data []byte) (Level, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", filepath.Ext(name))
	}
}
