package tui

import (
	"os"
	"strings"
	"sync"

	"listical-cli/internal/store"
)

// Terminal apps can't change the user's font. Instead we choose between
// Unicode and ASCII glyph sets for UI affordances (twisties, bullets, rules).
// This helps on terminals/fonts that don't render some glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference reads LISTICAL_TUI_GLYPHS first, then the config file.
func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("LISTICAL_TUI_GLYPHS")))
	if v == "" {
		if cfg, err := store.LoadConfig(); err == nil && cfg.TUI != nil {
			v = strings.ToLower(strings.TrimSpace(cfg.TUI.Glyphs))
		}
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphTwistyCollapsed() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphTwistyExpanded() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
