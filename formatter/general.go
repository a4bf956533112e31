package formatter

type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .Location -}}
{{snippet .Value .Padding -}}
{{underlineAndMessage .Message .Padding .Value .Start .End}}

{{- if .Suggestion }}
{{suggestion "Suggestion" .Suggestion .Padding}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}
