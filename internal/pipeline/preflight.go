package pipeline

import (
	"fmt"
	"os/exec"

	"subweave/internal/stage"
)

// Preflight checks that the external tools a run will need are reachable.
// Failures are reported, not fatal: a library whose artifacts already exist
// can finish a run without ever invoking the missing tool.
func (p *Pipeline) Preflight() []stage.Health {
	checks := make([]stage.Health, 0, 3)

	checks = append(checks, checkBinary("whisper", p.cfg.Whisper.Binary))
	if p.cfg.Whisper.VocalIsolation {
		checks = append(checks, checkBinary("demucs", p.cfg.Whisper.DemucsBinary))
	}
	if p.cfg.Translate.BrowserPath != "" {
		checks = append(checks, checkBinary("browser", p.cfg.Translate.BrowserPath))
	}
	return checks
}

func checkBinary(name, binary string) stage.Health {
	if binary == "" {
		return stage.Unhealthy(name, "no binary configured")
	}
	if _, err := exec.LookPath(binary); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("%s not found in PATH", binary))
	}
	return stage.Healthy(name)
}
