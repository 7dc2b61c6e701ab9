package library

import (
	"path/filepath"
	"strings"

	"subweave/internal/language"
)

// Artifacts derives the on-disk names of every file the pipeline produces
// for one video. All artifacts live next to the source video.
type Artifacts struct {
	dir       string
	stem      string
	primary   string
	secondary string
}

// NewArtifacts binds a video to the primary (audio) and secondary
// (translation target) language codes.
func NewArtifacts(video Video, primary, secondary string) Artifacts {
	return Artifacts{
		dir:       video.Dir,
		stem:      video.Stem,
		primary:   primary,
		secondary: secondary,
	}
}

// PassSRT is the raw transcription output of one decoding pass.
func (a Artifacts) PassSRT(pass string) string {
	return a.join(language.Prefix(a.primary) + "_" + a.stem + "." + pass + ".srt")
}

// MergedSRT is the multi-pass merge result.
func (a Artifacts) MergedSRT() string {
	return a.join(language.Prefix(a.primary) + "_" + a.stem + ".srt")
}

// CleanSRT is the normalized merged track.
func (a Artifacts) CleanSRT() string {
	return a.join(language.Prefix(a.primary) + "_clean_" + a.stem + ".srt")
}

// TranslatedSRT is the translation of the cleaned track.
func (a Artifacts) TranslatedSRT() string {
	return a.join(language.Prefix(a.secondary) + "_clean_" + a.stem + ".srt")
}

// BilingualSRT is the final two-line-per-cue subtitle file.
func (a Artifacts) BilingualSRT() string {
	return a.join(a.stem + "." + strings.ToLower(language.ToISO2(a.primary)) + ".srt")
}

// VocalsWAV is the optional demucs vocal-isolation output.
func (a Artifacts) VocalsWAV() string {
	return a.join(a.stem + "_vocals.wav")
}

func (a Artifacts) join(name string) string {
	return filepath.Join(a.dir, name)
}
