package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAlign(); err != nil {
		return err
	}
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAlign() error {
	switch c.Align.Tokenizer {
	case "auto", "whitespace", "kagome":
	default:
		return fmt.Errorf("align.tokenizer must be auto, whitespace, or kagome (got %q)", c.Align.Tokenizer)
	}
	switch c.Align.OutputFormat {
	case "vtt", "srt":
	default:
		return fmt.Errorf("align.output_format must be vtt or srt (got %q)", c.Align.OutputFormat)
	}
	if c.Align.MinDocumentSimilarity < 0 || c.Align.MinDocumentSimilarity > 1 {
		return errors.New("align.min_document_similarity must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	switch c.WhisperX.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("whisperx.vad_method must be silero or pyannote (got %q)", c.WhisperX.VADMethod)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
}
