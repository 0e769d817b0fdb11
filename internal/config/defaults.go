package config

const (
	defaultConfigPath      = "~/.config/fleursexport/config.toml"
	defaultLimit           = 10
	defaultOutputRoot      = "./downloaded_data"
	defaultSplit           = "test"
	defaultAudioFormat     = "wav"
	defaultSourceKind      = SourceHuggingFace
	defaultSourceBaseURL   = "https://datasets-server.huggingface.co"
	defaultSourceDataset   = "google/fleurs"
	defaultSourcePageSize  = 100
	defaultSourceTimeout   = 60
	defaultStateDir        = "~/.local/state/fleursexport"
	defaultLogDir          = "~/.local/state/fleursexport/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	maxSourcePageSize      = 100
	defaultSourceUserAgent = "fleursexport/dev"
)

// Source kinds accepted by source.kind.
const (
	SourceHuggingFace = "hf"
	SourceLocal       = "local"
)

// Audio formats accepted by export.audio_format.
const (
	AudioFormatWAV = "wav"
	AudioFormatRaw = "raw"
)

// defaultLanguages are the FLEURS configs exported when nothing overrides them.
var defaultLanguages = []string{"hi_in", "af_za"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	langs := make([]string, len(defaultLanguages))
	copy(langs, defaultLanguages)
	return Config{
		Export: Export{
			Languages:   langs,
			Limit:       defaultLimit,
			OutputRoot:  defaultOutputRoot,
			Split:       defaultSplit,
			AudioFormat: defaultAudioFormat,
		},
		Source: Source{
			Kind:           defaultSourceKind,
			BaseURL:        defaultSourceBaseURL,
			Dataset:        defaultSourceDataset,
			PageSize:       defaultSourcePageSize,
			TimeoutSeconds: defaultSourceTimeout,
		},
		Cache: Cache{
			Enabled: false,
			Path:    defaultCachePath(),
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// UserAgent returns the User-Agent sent to remote dataset sources.
func (c *Config) UserAgent() string {
	return defaultSourceUserAgent
}
