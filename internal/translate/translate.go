package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"subweave/internal/config"
	"subweave/internal/fileutil"
	"subweave/internal/language"
)

const (
	fileInputSelector = `input[type="file"]`
	languageCombo     = "select.goog-te-combo"
	successBanner     = "h4.skiptranslate.success-msg"
	downloadPollEvery = 500 * time.Millisecond
)

// Service drives the translation website in a real browser: upload an SRT,
// pick the target language, translate, download the result.
type Service struct {
	cfg           config.Translate
	target        string
	attemptRunner func(ctx context.Context, srcSRT, destSRT string) error
}

// NewService creates a translation service targeting the given language.
func NewService(cfg config.Translate, target string) *Service {
	return &Service{cfg: cfg, target: language.ToISO2(target)}
}

// WithAttemptRunner replaces the browser attempt (for testing).
func (s *Service) WithAttemptRunner(runner func(ctx context.Context, srcSRT, destSRT string) error) {
	s.attemptRunner = runner
}

// Translate uploads srcSRT and writes the translated file to destSRT. Failed
// attempts are retried up to the configured count.
func (s *Service) Translate(ctx context.Context, srcSRT, destSRT string) error {
	if !fileutil.NonEmptyFile(srcSRT) {
		return fmt.Errorf("translate: missing source %s", srcSRT)
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.attempt(ctx, srcSRT, destSRT); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("translate %s: %w", filepath.Base(srcSRT), lastErr)
}

func (s *Service) attempt(ctx context.Context, srcSRT, destSRT string) error {
	if s.attemptRunner != nil {
		return s.attemptRunner(ctx, srcSRT, destSRT)
	}

	downloadDir, err := os.MkdirTemp("", "subweave-translate-")
	if err != nil {
		return fmt.Errorf("download dir: %w", err)
	}
	defer os.RemoveAll(downloadDir)

	l := launcher.New().Headless(s.cfg.Headless)
	if s.cfg.BrowserPath != "" {
		l = l.Bin(s.cfg.BrowserPath)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: s.cfg.ServiceURL})
	if err != nil {
		return fmt.Errorf("open %s: %w", s.cfg.ServiceURL, err)
	}
	if s.cfg.TimeoutMinutes > 0 {
		page = page.Timeout(time.Duration(s.cfg.TimeoutMinutes) * time.Minute)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("load %s: %w", s.cfg.ServiceURL, err)
	}

	input, err := page.Element(fileInputSelector)
	if err != nil {
		return fmt.Errorf("find upload input: %w", err)
	}
	if err := input.SetFiles([]string{srcSRT}); err != nil {
		return fmt.Errorf("upload subtitle: %w", err)
	}

	combo, err := page.Element(languageCombo)
	if err != nil {
		return fmt.Errorf("find language combo: %w", err)
	}
	optionSelector := fmt.Sprintf(`option[value=%q]`, s.target)
	if err := combo.Select([]string{optionSelector}, true, rod.SelectorTypeCSSSector); err != nil {
		return fmt.Errorf("select language %s: %w", s.target, err)
	}

	translateBtn, err := page.ElementR("button", "Translate")
	if err != nil {
		return fmt.Errorf("find translate button: %w", err)
	}
	if err := translateBtn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click translate: %w", err)
	}

	banner, err := page.Element(successBanner)
	if err != nil {
		return fmt.Errorf("await translation: %w", err)
	}
	if err := banner.WaitVisible(); err != nil {
		return fmt.Errorf("await translation banner: %w", err)
	}

	err = proto.BrowserSetDownloadBehavior{
		Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
		DownloadPath: downloadDir,
	}.Call(browser)
	if err != nil {
		return fmt.Errorf("set download dir: %w", err)
	}

	downloadBtn, err := page.ElementR("button", "Download")
	if err != nil {
		return fmt.Errorf("find download button: %w", err)
	}
	if err := downloadBtn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click download: %w", err)
	}

	downloaded, err := waitForDownload(ctx, downloadDir, time.Duration(s.cfg.TimeoutMinutes)*time.Minute)
	if err != nil {
		return err
	}
	if err := fileutil.MoveFile(downloaded, destSRT); err != nil {
		return fmt.Errorf("collect download: %w", err)
	}
	return nil
}

// waitForDownload polls dir until a finished .srt file shows up. Chromium
// keeps in-flight downloads as .crdownload, so those are ignored.
func waitForDownload(ctx context.Context, dir string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = time.Minute
	}
	deadline := time.Now().Add(timeout)
	for {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", fmt.Errorf("poll downloads: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.HasSuffix(name, ".crdownload") {
				continue
			}
			path := filepath.Join(dir, name)
			if fileutil.NonEmptyFile(path) {
				return path, nil
			}
		}
		if time.Now().After(deadline) {
			return "", errors.New("download did not finish in time")
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(downloadPollEvery):
		}
	}
}
