package config

const (
	defaultConfigPath            = "~/.config/cuesync/config.toml"
	defaultStateDir              = "~/.local/share/cuesync"
	defaultLogDir                = "~/.local/share/cuesync/logs"
	defaultTokenizer             = "auto"
	defaultOutputFormat          = "vtt"
	defaultMinDocumentSimilarity = 0.2
	defaultBatchConcurrency      = 4
	defaultWhisperXModel         = "large-v3"
	defaultVADMethod             = "silero"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Align: Align{
			Tokenizer:             defaultTokenizer,
			OutputFormat:          defaultOutputFormat,
			MinDocumentSimilarity: defaultMinDocumentSimilarity,
			BatchConcurrency:      defaultBatchConcurrency,
		},
		WhisperX: WhisperX{
			Model:     defaultWhisperXModel,
			VADMethod: defaultVADMethod,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
