package configloader

import "github.com/yaklabco/exprcst/pkg/config"

// merge combines two configurations, with override taking precedence:
//   - scalars replace base when non-zero
//   - pointer fields replace base when non-nil
//   - slices replace base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()
	o := override.Clone()

	if o.Extensions != nil {
		result.Extensions = o.Extensions
	}
	if o.Ignore != nil {
		result.Ignore = o.Ignore
	}
	if o.Severity != "" {
		result.Severity = o.Severity
	}

	if o.Markdown.Enabled != nil {
		result.Markdown.Enabled = o.Markdown.Enabled
	}
	if o.Markdown.Languages != nil {
		result.Markdown.Languages = o.Markdown.Languages
	}

	if o.Golden.Enabled != nil {
		result.Golden.Enabled = o.Golden.Enabled
	}
	if o.Golden.Suffix != "" {
		result.Golden.Suffix = o.Golden.Suffix
	}

	if o.Format != "" {
		result.Format = o.Format
	}
	if o.Jobs != 0 {
		result.Jobs = o.Jobs
	}
	// UpdateGolden only ever comes from the command line, so true wins.
	if o.UpdateGolden {
		result.UpdateGolden = true
	}

	return result
}
