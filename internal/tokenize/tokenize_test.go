package tokenize

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestWhitespaceTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"only space", "  \n ", nil},
		{"single line", "Hello world\n", []string{"Hello", " ", "world", "\n"}},
		{"leading space skipped", "  a b", []string{"a", " ", "b"}},
		{"multi line", "one two\n\nthree", []string{"one", " ", "two", "\n\n", "three"}},
		{"unicode space", "a　b", []string{"a", "　", "b"}},
		{"trailing mixed", "end.  \n", []string{"end.", "  \n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Texts(tt.in, Whitespace{}.Tokenize(tt.in))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWhitespaceRangesAreContiguousAfterFirst(t *testing.T) {
	text := " alpha beta\ngamma  "
	ranges := Whitespace{}.Tokenize(text)
	if len(ranges) == 0 {
		t.Fatal("expected tokens")
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Start != ranges[i-1].End {
			t.Fatalf("gap between %v and %v", ranges[i-1], ranges[i])
		}
	}
	if ranges[len(ranges)-1].End != len(text) {
		t.Fatalf("last range %v does not reach end %d", ranges[len(ranges)-1], len(text))
	}
}

func TestKagomeKeepsLineBreaks(t *testing.T) {
	k, err := NewKagome()
	if err != nil {
		t.Fatalf("NewKagome: %v", err)
	}
	text := "すもももももももものうち\n東京に行く\n"
	ranges := k.Tokenize(text)
	if len(ranges) < 4 {
		t.Fatalf("expected several morphemes, got %v", ranges)
	}
	if got := strings.Join(Texts(text, ranges), ""); got != text {
		t.Fatalf("tokens do not reassemble input: %q", got)
	}
	breaks := 0
	for _, token := range Texts(text, ranges) {
		if strings.Contains(token, "\n") {
			breaks++
		}
	}
	if breaks != 2 {
		t.Fatalf("expected 2 line-break tokens, got %d", breaks)
	}
}

func TestForLanguage(t *testing.T) {
	tests := []struct {
		lang, kind string
		want       string
		wantErr    bool
	}{
		{"en", "auto", KindWhitespace, false},
		{"ja", "", KindKagome, false},
		{"jpn", "auto", KindKagome, false},
		{"en", "kagome", KindKagome, false},
		{"ja", "whitespace", KindWhitespace, false},
		{"en", "mecab", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.kind, func(t *testing.T) {
			tok, err := ForLanguage(tt.lang, tt.kind, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ForLanguage: %v", err)
			}
			if tok.Name() != tt.want {
				t.Fatalf("Name() = %q, want %q", tok.Name(), tt.want)
			}
		})
	}
}

func TestForLanguageWarnsForJapaneseWhitespace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if _, err := ForLanguage("ja", KindWhitespace, logger); err != nil {
		t.Fatalf("ForLanguage: %v", err)
	}
	if !strings.Contains(buf.String(), "event_type=tokenizer_mismatch") {
		t.Fatalf("expected mismatch warning, got %q", buf.String())
	}
}
