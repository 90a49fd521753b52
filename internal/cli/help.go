package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/internal/ui/pretty"
)

// helpStyles holds the Lipgloss styles used by the help and usage templates.
type helpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{Command: plain, Heading: plain, Subcommand: plain, Flag: plain, Dim: plain}
	}
	return helpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimLines . }}

{{end}}` + usageTemplate

// applyHelp installs styled help and usage output on cmd. Its subcommands
// inherit both. Color is resolved per invocation from the --color flag, which
// has been parsed by the time help is rendered.
func applyHelp(cmd *cobra.Command) {
	render := func(command *cobra.Command, out io.Writer, text string) error {
		colorFlag, err := command.Flags().GetString("color")
		if err != nil {
			colorFlag = "auto"
		}
		styles := newHelpStyles(pretty.IsColorEnabled(colorFlag, out))

		tmpl, err := template.New("help").Funcs(helpFuncs(styles)).Parse(text)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		return tmpl.Execute(out, command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render(command, command.OutOrStderr(), usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command, command.OutOrStdout(), helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func helpFuncs(styles helpStyles) template.FuncMap {
	return template.FuncMap{
		"heading":    styles.Heading.Render,
		"command":    styles.Command.Render,
		"subcommand": styles.Subcommand.Render,
		"dim":        styles.Dim.Render,
		"flags":      func(usages string) string { return styleFlagUsages(styles, usages) },
		"join":       strings.Join,
		"rpad":       rpad,
		"trimLines":  trimLines,
	}
}

// styleFlagUsages colors the flag names in pflag's usage block. A line whose
// flag column cannot be found is left as is.
func styleFlagUsages(styles helpStyles, usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		rest := line[indent:]

		gap := strings.Index(rest, "   ")
		if gap <= 0 {
			continue
		}

		fields := strings.Fields(rest[:gap])
		for j, field := range fields {
			name := strings.TrimSuffix(field, ",")
			switch {
			case strings.HasPrefix(name, "-"):
				fields[j] = styles.Flag.Render(name) + field[len(name):]
			default:
				fields[j] = styles.Dim.Render(field)
			}
		}

		lines[i] = line[:indent] + strings.Join(fields, " ") + "   " + strings.TrimLeft(rest[gap:], " ")
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

func trimLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
