package parse

import (
	"testing"

	"pgregory.net/rapid"
)

func TestCleanJSONStr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
		{name: "trim", input: "  {\"a\": 1}\n", want: `{"a": 1}`},
		{name: "trailing comma", input: `{"key": "value",}`, want: `{"key": "value"}`},
		{name: "trailing comma before newline brace", input: "{\"key\": \"value\",\n}", want: "{\"key\": \"value\"\n}"},
		{name: "trailing comma in array", input: `{"ids": [1, 2,]}`, want: `{"ids": [1, 2]}`},
		{name: "line comment after object", input: `{"key": "value"} // c`, want: `{"key": "value"}`},
		{name: "line comment inside object", input: "{\"a\": 1, // first\n\"b\": 2}", want: "{\"a\": 1, \n\"b\": 2}"},
		{name: "block comment", input: `{"a": /* note */ 1}`, want: `{"a":  1}`},
		{name: "multiline block comment", input: "{\"a\": 1 /* one\ntwo */}", want: `{"a": 1 }`},
		{name: "unterminated block comment", input: `{"a": 1} /* dangling`, want: `{"a": 1}`},
		{name: "comment exposes trailing comma", input: "{\"a\": 1, // gone\n}", want: "{\"a\": 1 \n}"},
		{name: "url in string survives", input: `{"url": "https://example.com/x"}`, want: `{"url": "https://example.com/x"}`},
		{name: "block marker in string survives", input: `{"glob": "/* all */"}`, want: `{"glob": "/* all */"}`},
		{name: "dot before brace", input: `{"a": "b".}`, want: `{"a": "b"}`},
		{name: "dot inside string kept", input: `{"a": "end.}"}`, want: `{"a": "end.}"}`},
		{name: "comma inside string kept", input: `{"a": "x,}"}`, want: `{"a": "x,}"}`},
		{name: "dot after whitespace", input: `{"a": 1 .}`, want: `{"a": 1 }`},
		{name: "escaped quote in string", input: `{"a": "say \"hi\",}"}`, want: `{"a": "say \"hi\",}"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONStr(tt.input)
			if got != tt.want {
				t.Errorf("CleanJSONStr(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanJSONStr_Idempotent(t *testing.T) {
	alphabet := []rune(`{}[]",:./*\ ab1` + "\n")

	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringOf(rapid.RuneFrom(alphabet)).Draw(rt, "s")

		once := CleanJSONStr(s)
		twice := CleanJSONStr(once)
		if once != twice {
			rt.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

func TestCleanJSONStr_IdempotentArbitrary(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		once := CleanJSONStr(s)
		if twice := CleanJSONStr(once); once != twice {
			rt.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}
