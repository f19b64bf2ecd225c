package configuration

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/iotaledger/oneshot/ierrors"
)

// codecParser is a koanf.Parser that is built from the marshal functions of a serialization library. Keys are lower
// cased when reading so that files, flags and environment variables address the same settings.
type codecParser struct {
	unmarshal func(data []byte, target interface{}) error
	marshal   func(source interface{}) ([]byte, error)
}

// fileParsers maps the supported file extensions to their parser.
var fileParsers = map[string]*codecParser{
	".json": {unmarshal: json.Unmarshal, marshal: json.Marshal},
	".yaml": {unmarshal: yaml.Unmarshal, marshal: yaml.Marshal},
	".yml":  {unmarshal: yaml.Unmarshal, marshal: yaml.Marshal},
	".toml": {unmarshal: toml.Unmarshal, marshal: toml.Marshal},
}

// parserForFile returns the parser that matches the extension of the given file.
func parserForFile(filePath string) (koanf.Parser, error) {
	parser, exists := fileParsers[strings.ToLower(filepath.Ext(filePath))]
	if !exists {
		return nil, ierrors.Wrapf(ErrUnknownConfigFormat, "unsupported file %s", filePath)
	}

	return parser, nil
}

// Unmarshal decodes the given bytes into a settings map with lower cased keys.
func (c *codecParser) Unmarshal(data []byte) (map[string]interface{}, error) {
	settings := make(map[string]interface{})
	if err := c.unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return lowerCaseKeys(settings), nil
}

// Marshal encodes the given settings map.
func (c *codecParser) Marshal(settings map[string]interface{}) ([]byte, error) {
	return c.marshal(settings)
}

// lowerCaseKeys returns a copy of the settings in which the keys of all nesting levels are lower cased.
func lowerCaseKeys(settings map[string]interface{}) map[string]interface{} {
	lowered := make(map[string]interface{}, len(settings))
	for key, value := range settings {
		switch nested := value.(type) {
		case map[string]interface{}:
			value = lowerCaseKeys(nested)
		case map[interface{}]interface{}:
			// yaml.v2 decodes nested objects with interface keys
			value = lowerCaseKeys(cast.ToStringMap(nested))
		}

		lowered[strings.ToLower(key)] = value
	}

	return lowered
}
