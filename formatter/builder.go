package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	tt "github.com/fbf-logic/tutor/internal/types"
)

// rule set
const (
	TruthTableMismatch = "truth-table-mismatch"
	InvalidArgument    = "invalid-argument"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	infoStyle       = color.New(color.FgHiCyan, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

const padding = "  "

// issueFormatter is the interface that wraps the issueTemplate method.
// Implementations of this interface are responsible for formatting specific types of lint issues.
type issueFormatter interface {
	IssueTemplate() string
}

// getIssueFormatter is a factory function that returns the appropriate IssueFormatter
// based on the given rule.
// If no specific formatter is found for the given rule, it returns a GeneralIssueFormatter.
func getIssueFormatter(rule string) issueFormatter {
	switch rule {
	case TruthTableMismatch:
		return &TruthTableFormatter{}
	case InvalidArgument:
		return &ArgumentFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

// GenerateFormattedIssue formats a slice of issues into a human-readable string.
// It uses the appropriate formatter for each issue based on its rule.
func GenerateFormattedIssue(issues []tt.Issue) string {
	var builder strings.Builder
	for _, issue := range issues {
		formatter := getIssueFormatter(issue.Rule)
		builder.WriteString(buildIssue(issue, formatter))
	}
	return builder.String()
}

/***** Issue Formatter Builder *****/

type IssueData struct {
	Category   string
	Severity   string
	Rule       string
	Location   string
	Padding    string
	Value      string
	Start      int
	End        int
	Message    string
	Suggestion string
	Note       string
}

func buildIssue(issue tt.Issue, formatter issueFormatter) string {
	data := IssueData{
		Severity:   issue.Severity.String(),
		Category:   issue.Category,
		Rule:       issue.Rule,
		Location:   issue.Location(),
		Padding:    padding,
		Value:      issue.Value,
		Start:      issue.Start,
		End:        issue.End,
		Message:    issue.Message,
		Suggestion: issue.Suggestion,
		Note:       issue.Note,
	}

	funcMap := template.FuncMap{
		"header":              header,
		"suggestion":          suggestion,
		"note":                note,
		"snippet":             valueSnippet,
		"underlineAndMessage": underlineAndMessage,
	}

	tmpl := template.Must(template.New("issue").Funcs(funcMap).Parse(formatter.IssueTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, severity string, location string) string {
	var endString string
	switch severity {
	case "ERROR":
		endString = errorStyle.Sprintf("error: ")
	case "WARNING":
		endString = warningStyle.Sprintf("warning: ")
	case "INFO":
		endString = infoStyle.Sprintf("info: ")
	}

	endString += ruleStyle.Sprintf("%s\n", rule)
	endString += lineStyle.Sprint(" --> ")
	endString += fileStyle.Sprintf("%s\n", location)

	return endString
}

func valueSnippet(value string, padding string) string {
	if value == "" {
		return ""
	}
	endString := lineStyle.Sprintf("%s|\n", padding)
	endString += lineStyle.Sprintf("%s| ", padding)
	endString += value + "\n"
	return endString
}

func underlineAndMessage(message string, padding string, value string, start int, end int) string {
	endString := lineStyle.Sprintf("%s| ", padding)

	if value == "" || start < 0 || end > len(value) || start > end {
		endString += messageStyle.Sprintf("%s\n", message)
		return endString
	}

	// columns are counted in terminal cells, glyphs may be wider than a byte
	underlineStart := uniseg.StringWidth(value[:start])
	underlineLength := uniseg.StringWidth(value[start:end])
	if underlineLength == 0 {
		underlineLength = 1
	}

	endString += strings.Repeat(" ", underlineStart)
	endString += messageStyle.Sprintf("%s\n", strings.Repeat("~", underlineLength))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("%s\n", message)

	return endString
}

func suggestion(label string, suggestion string, padding string) string {
	if suggestion == "" {
		return ""
	}

	endString := suggestionStyle.Sprintf("%s:\n", label)
	endString += lineStyle.Sprintf("%s|\n", padding)
	for _, line := range strings.Split(suggestion, "\n") {
		endString += lineStyle.Sprintf("%s| %s\n", padding, line)
	}
	endString += lineStyle.Sprintf("%s|\n", padding)
	return endString
}

func note(note string) string {
	if note == "" {
		return ""
	}

	endString := suggestionStyle.Sprint("Note: ")
	endString += lineStyle.Sprintf("%s\n", note)
	return endString
}
