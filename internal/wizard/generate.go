package wizard

import (
	"bytes"
	"text/template"
)

const configTemplate = `# deploycheck configuration

root: {{ .Root }}
{{- if .Compose }}
compose: {{ .Compose }}
{{- end }}
{{- if .Proxy }}
proxy: {{ .Proxy }}
{{- end }}
{{- if .EnvExample }}
env_example: {{ .EnvExample }}
{{- end }}

{{- if .SourceDirs }}

source:
  dirs:
{{- range .SourceDirs }}
    - {{ . }}
{{- end }}
{{- end }}

report:
  format: {{ .Format }}
`

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers Answers) (string, error) {
	if answers.Root == "" {
		answers.Root = "."
	}
	if answers.Format == "" {
		answers.Format = "text"
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", err
	}

	return buf.String(), nil
}
