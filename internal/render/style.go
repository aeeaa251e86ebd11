// Package render presents a model.Benchmark as console text, JSON or YAML.
package render

// Style decorates the pieces of a text record. Every function must be pure.
type Style struct {
	Heading func(string) string
	Label   func(string) string
	// Good and Bad colour the state of the benchmark.
	Good func(string) string
	Bad  func(string) string
	Warn func(string) string
}

const (
	ansiRed   = "\033[91m"
	ansiGreen = "\033[92m"
	ansiBlue  = "\033[94m"
	ansiReset = "\033[00m"
)

func identity(s string) string { return s }

func wrap(code string) func(string) string {
	return func(s string) string { return code + s + ansiReset }
}

// Plain renders without decoration.
var Plain = Style{
	Heading: identity,
	Label:   identity,
	Good:    identity,
	Bad:     identity,
	Warn:    identity,
}

// ANSI colours headings and warnings red, labels blue, and the state green
// when the benchmark is in good condition.
var ANSI = Style{
	Heading: wrap(ansiRed),
	Label:   wrap(ansiBlue),
	Good:    wrap(ansiGreen),
	Bad:     wrap(ansiRed),
	Warn:    wrap(ansiRed),
}

// StyleFor returns ANSI when color is true and Plain otherwise.
func StyleFor(color bool) Style {
	if color {
		return ANSI
	}
	return Plain
}
