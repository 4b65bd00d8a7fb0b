package deck

import (
	"strings"
	"testing"
)

const sample = `# Intro

Some prose.

` + "```skit" + `
var x = 1
print(x)
` + "```" + `

` + "```go" + `
fmt.Println("not a script")
` + "```" + `

## Second slide

` + "```skit" + `
print("two")
` + "```" + `
`

func TestExtractBlocks(t *testing.T) {
	blocks := ExtractBlocks([]byte(sample))
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Source != "var x = 1\nprint(x)\n" {
		t.Errorf("block 0 source = %q", blocks[0].Source)
	}
	if blocks[0].Line != 6 {
		t.Errorf("block 0 line = %d, want 6", blocks[0].Line)
	}
	if blocks[1].Source != "print(\"two\")\n" {
		t.Errorf("block 1 source = %q", blocks[1].Source)
	}
	if blocks[1].Line != 17 {
		t.Errorf("block 1 line = %d, want 17", blocks[1].Line)
	}
}

func TestExtractSkipsOtherLanguages(t *testing.T) {
	for _, b := range ExtractBlocks([]byte(sample)) {
		if strings.Contains(b.Source, "not a script") {
			t.Errorf("picked up a non-skit block: %q", b.Source)
		}
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	if blocks := ExtractBlocks([]byte("# Nothing here\n")); len(blocks) != 0 {
		t.Errorf("got %d blocks from a script-free document", len(blocks))
	}
}

func TestExtractEmptyBlockSkipped(t *testing.T) {
	src := "```skit\n```\n"
	if blocks := ExtractBlocks([]byte(src)); len(blocks) != 0 {
		t.Errorf("got %d blocks from an empty fence", len(blocks))
	}
}
