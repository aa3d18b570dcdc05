package config

import (
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// yamlParser implements koanf.Parser on top of yaml.v3.
type yamlParser struct{}

// YAMLParser returns a koanf parser for YAML configuration files.
func YAMLParser() koanf.Parser {
	return &yamlParser{}
}

// Unmarshal parses YAML bytes into a nested map. An empty document yields an
// empty map.
func (p *yamlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal renders a nested map as YAML.
func (p *yamlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(m)
}
