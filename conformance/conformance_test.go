package conformance

import (
	"testing"
)

func TestConformance(t *testing.T) {
	cases, err := LoadAll("testdata")
	if err != nil {
		t.Fatalf("loading suites: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no conformance cases loaded")
	}

	byFile := make(map[string][]LoadedCase)
	var order []string
	for _, c := range cases {
		if _, seen := byFile[c.File]; !seen {
			order = append(order, c.File)
		}
		byFile[c.File] = append(byFile[c.File], c)
	}

	for _, file := range order {
		t.Run(file, func(t *testing.T) {
			for _, lc := range byFile[file] {
				lc := lc
				t.Run(lc.Case.Name, func(t *testing.T) {
					if lc.Case.Skip != "" {
						t.Skip(lc.Case.Skip)
					}
					if detail := Run(lc.Case); detail != "" {
						t.Error(detail)
					}
				})
			}
		})
	}
}

func TestSuitesWellFormed(t *testing.T) {
	cases, err := LoadAll("testdata")
	if err != nil {
		t.Fatalf("loading suites: %v", err)
	}
	for _, lc := range cases {
		if lc.Case.Name == "" {
			t.Errorf("%s: case with no name", lc.File)
		}
		if lc.Case.Script == "" {
			t.Errorf("%s/%s: no script", lc.File, lc.Case.Name)
		}
		if lc.Case.Error != "" && len(lc.Case.Output) > 0 {
			t.Errorf("%s/%s: both error and output expectations", lc.File, lc.Case.Name)
		}
		switch lc.Case.Error {
		case "", "ParseError", "TypeError", "ArgumentError", "UndefinedError":
		default:
			t.Errorf("%s/%s: unknown error kind %q", lc.File, lc.Case.Name, lc.Case.Error)
		}
	}
}
