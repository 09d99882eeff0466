package tokenize

import (
	"fmt"
	"log/slog"
	"strings"

	"cuesync/internal/language"
	"cuesync/internal/logging"
)

// Tokenizer kinds accepted by ForLanguage.
const (
	KindAuto       = "auto"
	KindWhitespace = "whitespace"
	KindKagome     = "kagome"
)

// ForLanguage picks a tokenizer for a transcript language. An explicit kind
// wins; auto selects kagome for Japanese and whitespace otherwise.
func ForLanguage(lang, kind string, logger *slog.Logger) (Tokenizer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	japanese := language.ToISO2(lang) == "ja"

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindAuto:
		if japanese {
			return NewKagome()
		}
		return Whitespace{}, nil
	case KindWhitespace:
		if japanese {
			logging.WarnWithContext(logger, "whitespace tokenizer selected for japanese transcript", "tokenizer_mismatch",
				logging.String(logging.FieldErrorHint, "set align.tokenizer to auto or kagome for Japanese"),
				logging.String(logging.FieldImpact, "alignment quality will be poor"),
			)
		}
		return Whitespace{}, nil
	case KindKagome:
		return NewKagome()
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", kind)
	}
}
