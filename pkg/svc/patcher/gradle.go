package patcher

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// BuildScriptFile is the Android module build script relative to the project root.
const BuildScriptFile = "android/app/build.gradle.kts"

const blockIndent = "    "

// ErrAnchorNotFound is returned when an edit cannot locate the block it targets.
var ErrAnchorNotFound = errors.New("anchor not found")

// ErrUnbalancedBlock is returned when a block's opening brace has no matching close.
var ErrUnbalancedBlock = errors.New("unbalanced braces")

// Edit is one declarative change to a brace-delimited build script.
type Edit interface {
	Apply(src string) (string, error)
	Describe() string
}

// Apply runs edits in order. The first failing edit aborts the patch and the input is
// returned unchanged together with the error.
func Apply(src string, edits ...Edit) (string, error) {
	out := src

	for _, edit := range edits {
		next, err := edit.Apply(out)
		if err != nil {
			return src, fmt.Errorf("%s: %w", edit.Describe(), err)
		}

		out = next
	}

	return out, nil
}

// InsertFirstLine inserts Line as the first statement of the first Block.
// Nothing is inserted when the block already contains Line.
type InsertFirstLine struct {
	Block string
	Line  string
}

// Apply implements Edit.
func (e InsertFirstLine) Apply(src string) (string, error) {
	span, err := findBlock(src, e.Block)
	if err != nil {
		return "", err
	}

	if strings.Contains(src[span.open:span.end], e.Line) {
		return src, nil
	}

	insert := "\n" + span.indent + blockIndent + e.Line

	return src[:span.open+1] + insert + src[span.open+1:], nil
}

// Describe implements Edit.
func (e InsertFirstLine) Describe() string {
	return fmt.Sprintf("insert %q into %s", e.Line, e.Block)
}

// ReplaceBlock swaps the first Block, from its name through its closing brace, for
// Replacement. Replacement is written without indentation; each of its lines is
// indented to the depth of the block it replaces.
type ReplaceBlock struct {
	Block       string
	Replacement string
}

// Apply implements Edit.
func (e ReplaceBlock) Apply(src string) (string, error) {
	span, err := findBlock(src, e.Block)
	if err != nil {
		return "", err
	}

	return src[:span.start] + indentLines(e.Replacement, span.indent) + src[span.end:], nil
}

// Describe implements Edit.
func (e ReplaceBlock) Describe() string {
	return "replace " + e.Block
}

// AppendText adds Text at the end of the script, separated by a blank line.
type AppendText struct {
	Text string
}

// Apply implements Edit.
func (e AppendText) Apply(src string) (string, error) {
	text := strings.TrimRight(e.Text, "\n")
	if strings.Contains(src, text) {
		return src, nil
	}

	return strings.TrimRight(src, "\n") + "\n\n" + text + "\n", nil
}

// Describe implements Edit.
func (e AppendText) Describe() string {
	return "append text"
}

type blockSpan struct {
	start  int // first byte of the line holding the anchor
	open   int // the opening brace
	end    int // one past the closing brace
	indent string
}

func findBlock(src, name string) (blockSpan, error) {
	anchor := regexp.MustCompile(`(?m)^([ \t]*)` + regexp.QuoteMeta(name) + `\s*\{`)

	loc := anchor.FindStringSubmatchIndex(src)
	if loc == nil {
		return blockSpan{}, fmt.Errorf("%w: %s {", ErrAnchorNotFound, name)
	}

	open := loc[1] - 1

	end, err := matchBrace(src, open)
	if err != nil {
		return blockSpan{}, fmt.Errorf("%s: %w", name, err)
	}

	return blockSpan{start: loc[0], open: open, end: end, indent: src[loc[2]:loc[3]]}, nil
}

// matchBrace returns the offset just past the brace closing the one at open. Braces
// inside string literals and comments are ignored.
//
//nolint:cyclop // a single scanner loop reads better than split state handlers
func matchBrace(src string, open int) (int, error) {
	depth := 0

	for i := open; i < len(src); i++ {
		switch {
		case strings.HasPrefix(src[i:], "//"):
			next := strings.IndexByte(src[i:], '\n')
			if next < 0 {
				return 0, ErrUnbalancedBlock
			}

			i += next
		case strings.HasPrefix(src[i:], "/*"):
			next := strings.Index(src[i+2:], "*/")
			if next < 0 {
				return 0, ErrUnbalancedBlock
			}

			i += next + 3
		case src[i] == '"':
			i = skipString(src, i)
		case src[i] == '{':
			depth++
		case src[i] == '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}

	return 0, ErrUnbalancedBlock
}

// skipString returns the offset of the quote closing the literal that starts at i.
func skipString(src string, i int) int {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j
		}
	}

	return len(src)
}

func indentLines(text, indent string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}

	return strings.Join(lines, "\n")
}

const debugBuildTypes = `buildTypes {
    debug {
        isMinifyEnabled = true
        isShrinkResources = true
        proguardFiles(
            getDefaultProguardFile("proguard-android-optimize.txt"),
            "proguard-rules.pro",
        )
    }
}`

const desugaringDependencies = `dependencies {
    coreLibraryDesugaring("com.android.tools:desugar_jdk_libs:2.1.4")
}`

// BuildScriptEdits is the patch applied to the Android module build script: enable
// core library desugaring, replace the build types with a minified debug variant and
// add the desugaring library.
func BuildScriptEdits() []Edit {
	return []Edit{
		InsertFirstLine{Block: "compileOptions", Line: "isCoreLibraryDesugaringEnabled = true"},
		ReplaceBlock{Block: "buildTypes", Replacement: debugBuildTypes},
		AppendText{Text: desugaringDependencies},
	}
}

// PatchBuildScript applies [BuildScriptEdits] to src.
func PatchBuildScript(src string) (string, error) {
	return Apply(src, BuildScriptEdits()...)
}
