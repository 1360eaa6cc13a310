package launcher

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTransition is returned for a preset name that is not registered
var ErrUnknownTransition = errors.New("unknown transition")

// Transition is a named transition preset handed to a launched demo
type Transition string

const (
	TransitionNone          Transition = "none"
	TransitionFade          Transition = "fade"
	TransitionZoom          Transition = "zoom"
	TransitionModernFade    Transition = "modernFade"
	TransitionModernZoom    Transition = "modernZoom"
	TransitionScaleUp       Transition = "scaleUp"
	TransitionThumbnailZoom Transition = "thumbnailZoom"
)

// transitionInfo describes a preset
type transitionInfo struct {
	name        Transition
	description string
}

// transitions lists the presets in menu order
var transitions = []transitionInfo{
	{TransitionFade, "fade-in"},
	{TransitionZoom, "zoom-in"},
	{TransitionModernFade, "modern-fade-in"},
	{TransitionModernZoom, "modern-zoom-in"},
	{TransitionScaleUp, "scale-up"},
	{TransitionThumbnailZoom, "thumbnail-zoom"},
	{TransitionNone, "no"},
}

// Transitions returns every preset in menu order
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	for i, t := range transitions {
		out[i] = t.name
	}
	return out
}

// ParseTransition resolves a preset name. Matching ignores case, dashes and
// underscores, so "scale-up" and "SCALE_UP" both name scaleUp. The empty
// string is TransitionNone.
func ParseTransition(s string) (Transition, error) {
	key := normalize(s)
	if key == "" {
		return TransitionNone, nil
	}
	for _, t := range transitions {
		if normalize(string(t.name)) == key {
			return t.name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransition, s)
}

// Description returns the human-readable name used in log lines
func (t Transition) Description() string {
	for _, info := range transitions {
		if info.name == t {
			return info.description
		}
	}
	return string(t)
}

// String returns the preset name
func (t Transition) String() string {
	return string(t)
}

// Resolve picks the first usable preset: an explicit choice, then each
// fallback in order. Unknown names are skipped.
func Resolve(choices ...string) Transition {
	for _, c := range choices {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if t, err := ParseTransition(c); err == nil {
			return t
		}
	}
	return TransitionNone
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}
