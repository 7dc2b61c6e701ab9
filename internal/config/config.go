package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Library describes where and how media files are discovered.
type Library struct {
	BaseDir         string   `toml:"base_dir"`
	VideoExtensions []string `toml:"video_extensions"`
	ExcludeFolders  []string `toml:"exclude_folders"`
	Recursive       bool     `toml:"recursive"`
	ScanBaseDir     bool     `toml:"scan_base_dir"`
}

// Languages names the audio language and the translation target.
type Languages struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
}

// Whisper configures the external speech-recognition invocations.
type Whisper struct {
	Binary         string `toml:"binary"`
	Model          string `toml:"model"`
	Device         string `toml:"device"`
	ComputeType    string `toml:"compute_type"`
	TimeoutMinutes int    `toml:"timeout_minutes"`
	VocalIsolation bool   `toml:"vocal_isolation"`
	DemucsBinary   string `toml:"demucs_binary"`
	KeepVocalsWAV  bool   `toml:"keep_vocals_wav"`
	Passes         []Pass `toml:"passes"`
}

// Pass is one decoding configuration for a transcription run. Higher rank
// passes are trusted more when merged.
type Pass struct {
	Name              string  `toml:"name"`
	Rank              int     `toml:"rank"`
	BeamSize          int     `toml:"beam_size"`
	Temperature       float64 `toml:"temperature"`
	NoSpeechThreshold float64 `toml:"no_speech_threshold"`
	ConditionOnText   bool    `toml:"condition_on_previous_text"`
}

// Cleanup holds the normalizer and merger thresholds. The defaults are a
// documented contract; there is no universally correct setting.
type Cleanup struct {
	MinDurationMs int     `toml:"min_duration_ms"`
	MinChars      int     `toml:"min_chars"`
	MergeGapMs    int     `toml:"merge_gap_ms"`
	FragmentChars int     `toml:"fragment_chars"`
	FloorMs       int     `toml:"floor_ms"`
	GapAcceptance float64 `toml:"gap_acceptance"`
}

// Translate configures the browser automation against the translation site.
type Translate struct {
	ServiceURL     string `toml:"service_url"`
	Headless       bool   `toml:"headless"`
	BrowserPath    string `toml:"browser_path"`
	TimeoutMinutes int    `toml:"timeout_minutes"`
	Retries        int    `toml:"retries"`
}

// Workflow contains run-loop settings.
type Workflow struct {
	Workers int `toml:"workers"`
}

// Config encapsulates all configuration values for subweave.
type Config struct {
	Library   Library   `toml:"library"`
	Languages Languages `toml:"languages"`
	Whisper   Whisper   `toml:"whisper"`
	Cleanup   Cleanup   `toml:"cleanup"`
	Translate Translate `toml:"translate"`
	Workflow  Workflow  `toml:"workflow"`

	LogDir    string `toml:"log_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subweave/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("subweave.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes to.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.LogDir, err)
	}
	return nil
}

// QueueDBPath returns the SQLite database location.
func (c *Config) QueueDBPath() string {
	return filepath.Join(c.LogDir, "queue.db")
}

// LockFilePath returns the single-instance lock location.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.LogDir, "subweave.lock")
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
