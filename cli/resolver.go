package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads flag values from a
// YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The YAML structure is converted as follows:
//   - Top-level scalar keys map directly to flag names
//   - Nested mappings are flattened with hyphen-joined keys, so a "log"
//     mapping with a "level" key applies to the --log-level flag
//   - Numbers and booleans are converted to strings for Kong to parse
//
// Example config file:
//
//	log:
//	  level: debug
//	  format: json
//	  pretty: true
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		// Parse error - return empty config
		return config{}, nil
	}

	flat := make(config)
	flatten(flat, "", raw)

	return flat, nil
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten recursively flattens nested mappings into hyphen-joined keys,
// converting leaf values into strings Kong can parse.
func flatten(dst config, prefix string, src map[string]any) {
	for key, val := range src {
		name := key
		if prefix != "" {
			name = prefix + "-" + key
		}

		switch v := val.(type) {
		case map[string]any:
			flatten(dst, name, v)

		case bool:
			dst[name] = strconv.FormatBool(v)

		case int64:
			// Kong requires numbers as strings for parsing
			dst[name] = strconv.FormatInt(v, 10)

		case uint64:
			dst[name] = strconv.FormatUint(v, 10)

		case float64:
			dst[name] = strconv.FormatFloat(v, 'f', -1, 64)

		default:
			dst[name] = val
		}
	}
}
