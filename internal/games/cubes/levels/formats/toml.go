package formats

import (
	"errors"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file.
func ParseTOML(data []byte) (Level, error) {
	var generic map[string]any
	if _, err := toml.Decode(string(data), &generic); err != nil {
		return Level{}, tomlSyntaxError(err)
	}
	if err := Validate(generic); err != nil {
		return Level{}, err
	}

	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return Level{}, tomlSyntaxError(err)
	}
	return doc.Build()
}

func tomlSyntaxError(err error) error {
	var pe toml.ParseError
	if errors.As(err, &pe) {
		return ParseError{Code: CodeSyntax, Message: pe.Message, Line: pe.Position.Line}
	}
	return ParseError{Code: CodeSyntax, Message: err.Error()}
}
