package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// LoadYAML reads a YAML document and flattens its nested mappings into a
// MapSource of dotted keys, the same shape applyConfig callers expect
// from the upstream simulator's configuration store. Sequence values are
// joined with a single space, matching how "plugin.perfEst.memory.layout"
// carries an ordered list of cache level names as one space-separated
// string.
func LoadYAML(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var root map[string]interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	out := make(MapSource)
	flatten("", root, out)
	return out, nil
}

func flatten(prefix string, node interface{}, out MapSource) {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, val := range v {
			flatten(joinKey(prefix, key), val, out)
		}
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = scalarString(item)
		}
		out[prefix] = strings.Join(parts, " ")
	default:
		out[prefix] = scalarString(v)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
