package config

const (
	defaultLogDir            = "~/.local/share/subweave/logs"
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
	defaultPrimaryLanguage   = "bg"
	defaultSecondaryLanguage = "en"
	defaultWhisperBinary     = "whisper"
	defaultWhisperModel      = "large-v2"
	defaultWhisperDevice     = "cuda"
	defaultComputeType       = "float16"
	defaultWhisperTimeoutMin = 240
	defaultDemucsBinary      = "demucs"
	defaultServiceURL        = "https://translatesubtitles.co"
	defaultTranslateTimeout  = 10
	defaultTranslateRetries  = 1
	defaultWorkers           = 1

	defaultMinDurationMs = 200
	defaultMinChars      = 2
	defaultMergeGapMs    = 300
	defaultFragmentChars = 10
	defaultFloorMs       = 400
	defaultGapAcceptance = 0.90
)

var defaultVideoExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".mpg", ".ts", ".webm"}

// DefaultPasses returns the three decoding configurations merged per video:
// accurate is the trusted base, balanced and coverage fill its gaps in rank
// order.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: "accurate", Rank: 3, BeamSize: 15, Temperature: 0, NoSpeechThreshold: 0.6, ConditionOnText: true},
		{Name: "balanced", Rank: 2, BeamSize: 5, Temperature: 0.2, NoSpeechThreshold: 0.6, ConditionOnText: true},
		{Name: "coverage", Rank: 1, BeamSize: 1, Temperature: 0.4, NoSpeechThreshold: 0.3, ConditionOnText: false},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			VideoExtensions: append([]string(nil), defaultVideoExtensions...),
			Recursive:       true,
			ScanBaseDir:     true,
		},
		Languages: Languages{
			Primary:   defaultPrimaryLanguage,
			Secondary: defaultSecondaryLanguage,
		},
		Whisper: Whisper{
			Binary:         defaultWhisperBinary,
			Model:          defaultWhisperModel,
			Device:         defaultWhisperDevice,
			ComputeType:    defaultComputeType,
			TimeoutMinutes: defaultWhisperTimeoutMin,
			DemucsBinary:   defaultDemucsBinary,
			Passes:         DefaultPasses(),
		},
		Cleanup: Cleanup{
			MinDurationMs: defaultMinDurationMs,
			MinChars:      defaultMinChars,
			MergeGapMs:    defaultMergeGapMs,
			FragmentChars: defaultFragmentChars,
			FloorMs:       defaultFloorMs,
			GapAcceptance: defaultGapAcceptance,
		},
		Translate: Translate{
			ServiceURL:     defaultServiceURL,
			Headless:       true,
			TimeoutMinutes: defaultTranslateTimeout,
			Retries:        defaultTranslateRetries,
		},
		Workflow: Workflow{
			Workers: defaultWorkers,
		},
		LogDir:    defaultLogDir,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}
