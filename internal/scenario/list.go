package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeList renders an ordered scenario line list as a YAML sequence,
// the interchange format handed to translators.
func EncodeList(lines []string) ([]byte, error) {
	data, err := yaml.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode scenario list: %w", err)
	}
	return data, nil
}

// DecodeList reads an ordered scenario line list back from YAML.
func DecodeList(data []byte) ([]string, error) {
	var lines []string
	if err := yaml.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode scenario list: %w", err)
	}
	return lines, nil
}
