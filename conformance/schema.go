package conformance

// Suite is one YAML test file.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Tests       []Case `yaml:"tests"`
}

// Case is a single conformance test: a script plus either the lines it must
// print or the error kind it must raise.
type Case struct {
	Name   string   `yaml:"name"`
	Script string   `yaml:"script"`
	Output []string `yaml:"output,omitempty"`
	Error  string   `yaml:"error,omitempty"` // ParseError, TypeError, ArgumentError, UndefinedError
	Skip   string   `yaml:"skip,omitempty"`  // non-empty reason skips the case
}
