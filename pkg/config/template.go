package config

// templateHeader is written above the generated default configuration.
const templateHeader = `# exprcst configuration
#
# extensions:  file extensions parsed as expression sources
# ignore:      glob patterns (** allowed) for files to skip
# severity:    severity of syntax errors: error, warning or info
# markdown:    check fenced code blocks in Markdown files
#   languages: fence info strings that mark expression code
# golden:      compare parse trees with <file><suffix> golden files`

// GenerateTemplate returns a commented configuration file holding the
// default settings.
func GenerateTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"**/testdata/**"}
	return cfg.ToYAMLWithHeader(templateHeader)
}
