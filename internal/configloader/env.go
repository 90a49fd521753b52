package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/exprcst/pkg/config"
)

// EnvVarPrefix is the prefix for all exprcst environment variables.
const EnvVarPrefix = "EXPRCST_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds one environment variable to a config field.
type envMapping struct {
	suffix      string
	typ         envFieldType
	description string
	apply       func(cfg *config.Config, v envValue)
}

// envValue holds a parsed environment value of any supported type.
type envValue struct {
	s     string
	b     bool
	i     int
	slice []string
}

//nolint:gochecknoglobals // read-only lookup table
var envMappings = []envMapping{
	{
		suffix: "EXTENSIONS", typ: envTypeSlice,
		description: "Comma-separated list of expression file extensions",
		apply:       func(cfg *config.Config, v envValue) { cfg.Extensions = v.slice },
	},
	{
		suffix: "IGNORE", typ: envTypeSlice,
		description: "Comma-separated list of ignore patterns",
		apply:       func(cfg *config.Config, v envValue) { cfg.Ignore = v.slice },
	},
	{
		suffix: "SEVERITY", typ: envTypeString,
		description: "Severity of syntax errors: error, warning or info",
		apply:       func(cfg *config.Config, v envValue) { cfg.Severity = config.Severity(v.s) },
	},
	{
		suffix: "FORMAT", typ: envTypeString,
		description: "Report format: text or json",
		apply:       func(cfg *config.Config, v envValue) { cfg.Format = config.OutputFormat(v.s) },
	},
	{
		suffix: "JOBS", typ: envTypeInt,
		description: "Number of parallel workers (0 = one per CPU)",
		apply:       func(cfg *config.Config, v envValue) { cfg.Jobs = v.i },
	},
	{
		suffix: "MARKDOWN", typ: envTypeBool,
		description: "Check fenced expression blocks in Markdown: true or false",
		apply:       func(cfg *config.Config, v envValue) { cfg.Markdown.Enabled = &v.b },
	},
	{
		suffix: "MARKDOWN_LANGUAGES", typ: envTypeSlice,
		description: "Comma-separated fence info strings treated as expressions",
		apply:       func(cfg *config.Config, v envValue) { cfg.Markdown.Languages = v.slice },
	},
	{
		suffix: "GOLDEN", typ: envTypeBool,
		description: "Compare parse trees with golden files: true or false",
		apply:       func(cfg *config.Config, v envValue) { cfg.Golden.Enabled = &v.b },
	},
	{
		suffix: "GOLDEN_SUFFIX", typ: envTypeString,
		description: "Suffix appended to a source path to name its golden file",
		apply:       func(cfg *config.Config, v envValue) { cfg.Golden.Suffix = v.s },
	},
}

// LoadFromEnv applies EXPRCST_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, mapping := range envMappings {
		envVar := EnvVarPrefix + mapping.suffix
		raw, ok := lookup(envVar)
		if !ok || raw == "" {
			continue
		}

		value, err := parseEnvValue(mapping.typ, raw, envVar)
		if err != nil {
			return err
		}
		mapping.apply(cfg, value)
	}

	return nil
}

func parseEnvValue(typ envFieldType, raw, envVar string) (envValue, error) {
	switch typ {
	case envTypeString:
		return envValue{s: strings.TrimSpace(raw)}, nil
	case envTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, raw)
		}
		return envValue{b: b}, nil
	case envTypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("invalid integer for %s: %q", envVar, raw)
		}
		return envValue{i: i}, nil
	case envTypeSlice:
		return envValue{slice: parseSliceValue(raw)}, nil
	default:
		return envValue{}, fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated value, dropping empty elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported environment variable in a stable order.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, 0, len(envMappings))
	for _, m := range envMappings {
		out = append(out, EnvVar{Name: EnvVarPrefix + m.suffix, Description: m.description})
	}
	return out
}
