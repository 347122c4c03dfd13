package shell

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleSplitCommands() {
	fmt.Printf("%q\n", SplitCommands("  ls -l &pwd&  echo  hi  ", "&"))
	fmt.Printf("%q\n", SplitCommands("ls & & pwd", "&"))
	fmt.Printf("%q\n", SplitCommands("ls &", "&"))

	// Output: ["ls -l" "pwd" "echo  hi"]
	// ["ls" "" "pwd"]
	// ["ls" ""]
}

func ExampleTokenize() {
	fmt.Printf("%q\n", Tokenize("  echo   hello\tworld "))
	fmt.Printf("%q\n", Tokenize(" \t "))

	// Output: ["echo" "hello" "world"]
	// []
}

func TestSplitCommands(t *testing.T) {
	cases := map[string]struct {
		line     string
		delim    string
		expected []string
	}{
		"no delimiter":        {"echo hi", "&", []string{"echo hi"}},
		"no delimiter padded": {"\t echo  hi \n", "&", []string{"echo  hi"}},
		"empty line":          {"", "&", []string{""}},
		"whitespace line":     {"   ", "&", []string{""}},
		"two commands":        {"cmd1 & cmd2", "&", []string{"cmd1", "cmd2"}},
		"doubled delimiter":   {"ls & & pwd", "&", []string{"ls", "", "pwd"}},
		"adjacent delimiters": {"ls&&pwd", "&", []string{"ls", "", "pwd"}},
		"trailing delimiter":  {"ls &", "&", []string{"ls", ""}},
		"leading delimiter":   {"& ls", "&", []string{"", "ls"}},
		"custom delimiter":    {"a ; b & c", ";", []string{"a", "b & c"}},
		"default delimiter":   {"a & b", "", []string{"a", "b"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, SplitCommands(tc.line, tc.delim))
		})
	}
}

func TestSplitCommands_trimIsIdempotent(t *testing.T) {
	for _, line := range []string{"  a  &  b c  & ", "x", "\t&\t", "ls & & pwd"} {
		for _, cmd := range SplitCommands(line, "&") {
			assert.Equal(t, cmd, TrimSpace(cmd))
		}
	}
}

func TestTokenize(t *testing.T) {
	cases := map[string]struct {
		command  string
		expected []string
	}{
		"program only":      {"ls", []string{"ls"}},
		"args":              {"echo hi there", []string{"echo", "hi", "there"}},
		"collapsed spaces":  {"echo    hi", []string{"echo", "hi"}},
		"tabs and newlines": {"echo\thi\n there", []string{"echo", "hi", "there"}},
		"surrounding":       {"  path /bin /usr/bin  ", []string{"path", "/bin", "/usr/bin"}},
		"no quoting":        {`echo "a b"`, []string{"echo", `"a`, `b"`}},
		"empty":             {"", []string{}},
		"whitespace only":   {" \t ", []string{}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			actual := Tokenize(tc.command)
			assert.Equal(t, tc.expected, actual)
			for _, tok := range actual {
				assert.NotEmpty(t, tok)
			}
		})
	}
}

func TestTokenize_countsNonWhitespaceRuns(t *testing.T) {
	for _, command := range []string{"a", " a b  c ", "x\t\ty", "", "   ", "one"} {
		runs := 0
		inRun := false
		for _, r := range command {
			space := strings.ContainsRune(" \t\n\r\v\f", r)
			if !space && !inRun {
				runs++
			}
			inRun = !space
		}

		assert.Len(t, Tokenize(command), runs, "command %q", command)
	}
}
