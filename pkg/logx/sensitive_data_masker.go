package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

type maskRule struct {
	pattern     *regexp.Regexp
	replacement []byte
}

// Exact coordinates pin a property to an address, so they never reach the logs.
//
//nolint:gochecknoglobals
var sensitiveDataRules = []maskRule{
	{
		pattern:     regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
		replacement: []byte("${1}[MASKED]${2}"),
	},
	{
		pattern:     regexp.MustCompile(`("latitude":\s?)-?[0-9.eE+-]+(\s?[,}])`),
		replacement: []byte(`${1}"[MASKED]"${2}`),
	},
	{
		pattern:     regexp.MustCompile(`("longitude":\s?)-?[0-9.eE+-]+(\s?[,}])`),
		replacement: []byte(`${1}"[MASKED]"${2}`),
	},
	{
		pattern:     regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
		replacement: []byte("${1}[MASKED]${2}"),
	},
	{
		pattern:     regexp.MustCompile(`(?s)("email":\s?").+?(")`),
		replacement: []byte("${1}[MASKED]${2}"),
	},
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, rule := range sensitiveDataRules {
		input = rule.pattern.ReplaceAll(input, rule.replacement)
	}

	return input
}
