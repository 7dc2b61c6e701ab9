package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateCleanup(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if strings.TrimSpace(c.Library.BaseDir) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/subweave/config.toml"
		}
		return fmt.Errorf("library.base_dir is required. Edit %s (create with 'subweave config init')", defaultPath)
	}
	if !c.Library.ScanBaseDir && !c.Library.Recursive {
		return errors.New("library: at least one of scan_base_dir or recursive must be enabled")
	}
	return nil
}

func (c *Config) validateLanguages() error {
	if c.Languages.Primary == "" {
		return errors.New("languages.primary must be a recognized language code")
	}
	if c.Languages.Secondary == "" {
		return errors.New("languages.secondary must be a recognized language code")
	}
	if c.Languages.Primary == c.Languages.Secondary {
		return errors.New("languages.primary and languages.secondary must differ")
	}
	return nil
}

func (c *Config) validateWhisper() error {
	seenNames := make(map[string]struct{}, len(c.Whisper.Passes))
	seenRanks := make(map[int]struct{}, len(c.Whisper.Passes))
	for _, pass := range c.Whisper.Passes {
		name := strings.TrimSpace(pass.Name)
		if name == "" {
			return errors.New("whisper.passes: every pass needs a name")
		}
		if _, dup := seenNames[name]; dup {
			return fmt.Errorf("whisper.passes: duplicate pass name %q", name)
		}
		seenNames[name] = struct{}{}
		if pass.Rank < 1 {
			return fmt.Errorf("whisper.passes: pass %q rank must be >= 1", name)
		}
		if _, dup := seenRanks[pass.Rank]; dup {
			return fmt.Errorf("whisper.passes: duplicate rank %d", pass.Rank)
		}
		seenRanks[pass.Rank] = struct{}{}
		if pass.BeamSize < 1 {
			return fmt.Errorf("whisper.passes: pass %q beam_size must be >= 1", name)
		}
		if pass.Temperature < 0 || pass.Temperature > 1 {
			return fmt.Errorf("whisper.passes: pass %q temperature must be in [0, 1]", name)
		}
	}
	return nil
}

func (c *Config) validateCleanup() error {
	if c.Cleanup.MinDurationMs < 0 || c.Cleanup.MergeGapMs < 0 || c.Cleanup.FloorMs < 0 {
		return errors.New("cleanup: durations must not be negative")
	}
	if c.Cleanup.MinChars < 0 || c.Cleanup.FragmentChars < 0 {
		return errors.New("cleanup: character thresholds must not be negative")
	}
	if c.Cleanup.GapAcceptance <= 0 || c.Cleanup.GapAcceptance > 1 {
		return errors.New("cleanup.gap_acceptance must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Workers < 1 {
		return errors.New("workflow.workers must be >= 1")
	}
	return nil
}
