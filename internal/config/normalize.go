package config

import (
	"fmt"
	"strings"

	"subweave/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeLanguages()
	c.normalizeWhisper()
	c.normalizeTranslate()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Library.BaseDir, err = expandPath(c.Library.BaseDir); err != nil {
		return fmt.Errorf("library.base_dir: %w", err)
	}
	if strings.TrimSpace(c.LogDir) == "" {
		c.LogDir = defaultLogDir
	}
	if c.LogDir, err = expandPath(c.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	if len(c.Library.VideoExtensions) == 0 {
		c.Library.VideoExtensions = append([]string(nil), defaultVideoExtensions...)
	}
	for i, ext := range c.Library.VideoExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Library.VideoExtensions[i] = ext
	}
}

func (c *Config) normalizeLanguages() {
	c.Languages.Primary = language.ToISO2(c.Languages.Primary)
	c.Languages.Secondary = language.ToISO2(c.Languages.Secondary)
}

func (c *Config) normalizeWhisper() {
	if strings.TrimSpace(c.Whisper.Binary) == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	if strings.TrimSpace(c.Whisper.DemucsBinary) == "" {
		c.Whisper.DemucsBinary = defaultDemucsBinary
	}
	if c.Whisper.TimeoutMinutes <= 0 {
		c.Whisper.TimeoutMinutes = defaultWhisperTimeoutMin
	}
	if len(c.Whisper.Passes) == 0 {
		c.Whisper.Passes = DefaultPasses()
	}
}

func (c *Config) normalizeTranslate() {
	c.Translate.ServiceURL = strings.TrimSpace(c.Translate.ServiceURL)
	if c.Translate.ServiceURL == "" {
		c.Translate.ServiceURL = defaultServiceURL
	}
	if c.Translate.TimeoutMinutes <= 0 {
		c.Translate.TimeoutMinutes = defaultTranslateTimeout
	}
	if c.Translate.Retries < 0 {
		c.Translate.Retries = defaultTranslateRetries
	}
}

func (c *Config) normalizeLogging() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
}
