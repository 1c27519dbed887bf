package config

const (
	defaultOutputDir       = "~/Downloads/Converso"
	defaultLogDir          = "~/.local/share/converso/logs"
	defaultMode            = "merge"
	defaultQuality         = "best"
	defaultEngineBinary    = "yt-dlp"
	defaultFFmpegBinary    = "ffmpeg"
	defaultConcurrency     = 10
	defaultRetries         = 10
	defaultFragmentRetries = 10
	defaultSocketTimeout   = 30
	defaultWorkerBinary    = "converso-worker"
	defaultWorkerTimeout   = 300
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Defaults: Defaults{
			Mode:    defaultMode,
			Quality: defaultQuality,
		},
		Engine: Engine{
			Binary:          defaultEngineBinary,
			FFmpegBinary:    defaultFFmpegBinary,
			Concurrency:     defaultConcurrency,
			Retries:         defaultRetries,
			FragmentRetries: defaultFragmentRetries,
			SocketTimeout:   defaultSocketTimeout,
		},
		Worker: Worker{
			Binary:         defaultWorkerBinary,
			TimeoutSeconds: defaultWorkerTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
