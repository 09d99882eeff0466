package tokenize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

var (
	kagomeOnce     sync.Once
	kagomeInstance *tokenizer.Tokenizer
	kagomeErr      error
	kagomeMu       sync.Mutex
)

// Kagome segments Japanese text into morphemes with the IPA dictionary.
// Bytes the analyzer drops (spaces, line breaks) become their own tokens.
type Kagome struct {
	tk *tokenizer.Tokenizer
}

// NewKagome loads the shared IPA dictionary on first use.
func NewKagome() (*Kagome, error) {
	kagomeOnce.Do(func() {
		kagomeInstance, kagomeErr = tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	})
	if kagomeErr != nil {
		return nil, fmt.Errorf("load kagome dictionary: %w", kagomeErr)
	}
	return &Kagome{tk: kagomeInstance}, nil
}

// Name implements Tokenizer.
func (k *Kagome) Name() string { return KindKagome }

// Tokenize implements Tokenizer.
func (k *Kagome) Tokenize(text string) []Range {
	if text == "" {
		return nil
	}
	kagomeMu.Lock()
	tokens := k.tk.Tokenize(text)
	kagomeMu.Unlock()

	ranges := make([]Range, 0, len(tokens)*2)
	cursor := 0
	for _, token := range tokens {
		if token.Surface == "" {
			continue
		}
		idx := strings.Index(text[cursor:], token.Surface)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		if start > cursor {
			ranges = append(ranges, Range{Start: cursor, End: start})
		}
		end := start + len(token.Surface)
		ranges = append(ranges, Range{Start: start, End: end})
		cursor = end
	}
	if cursor < len(text) {
		ranges = append(ranges, Range{Start: cursor, End: len(text)})
	}
	return ranges
}
