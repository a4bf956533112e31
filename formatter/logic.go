package formatter

// TruthTableFormatter shows the column computed from the formula.
type TruthTableFormatter struct{}

func (f *TruthTableFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .Location -}}
{{snippet .Value .Padding -}}
{{underlineAndMessage .Message .Padding .Value .Start .End}}

{{- if .Suggestion }}
{{suggestion "Expected column" .Suggestion .Padding}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}

// ArgumentFormatter shows the counterexample or the stated argument.
type ArgumentFormatter struct{}

func (f *ArgumentFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .Location -}}
{{snippet .Value .Padding -}}
{{underlineAndMessage .Message .Padding .Value .Start .End}}

{{- if .Suggestion }}
{{suggestion "Stated argument" .Suggestion .Padding}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}
