package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The grid must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor where possible and only apply "faint" styling
// on dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorChromeFg lipgloss.TerminalColor = ac("240", "245")

	// Cursor cell: strong contrast in both themes.
	colorCursorBg lipgloss.TerminalColor = ac("232", "255")
	colorCursorFg lipgloss.TerminalColor = ac("255", "232")

	// Selected (non-cursor) cells and rows.
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	// Structural rows (project headers, archive weeks).
	colorHeaderFg lipgloss.TerminalColor = ac("235", "252")

	// Archived rows read as context, not work.
	colorArchivedFg lipgloss.TerminalColor = ac("241", "245")

	colorStatusDone    lipgloss.TerminalColor = ac("28", "40")  // green
	colorStatusBlocked lipgloss.TerminalColor = ac("160", "196") // red
	colorStatusHold    lipgloss.TerminalColor = ac("130", "214") // orange
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleCursor() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorCursorBg).Foreground(colorCursorFg).Bold(true)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorHeaderFg).Bold(true)
}

func styleStatus(s string) lipgloss.Style {
	switch s {
	case "Done":
		return lipgloss.NewStyle().Foreground(colorStatusDone)
	case "Blocked":
		return lipgloss.NewStyle().Foreground(colorStatusBlocked)
	case "On Hold":
		return lipgloss.NewStyle().Foreground(colorStatusHold)
	default:
		return lipgloss.NewStyle()
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors in
// a TUI. Here we only honor NO_COLOR and otherwise follow the terminal's
// capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// If TERM/COLORTERM indicate stronger support than the detector reports,
	// trust the env. Some terminals under-report on probing.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Some terminals don't reliably report their background, which can cause
// lipgloss.AdaptiveColor to pick the wrong variant.
//
// Priority:
// 1) LISTICAL_TUI_THEME=light|dark|auto
// 2) LISTICAL_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic (format like "15;0" = fg;bg)
func applyThemePreference() {
	if v := strings.TrimSpace(os.Getenv("LISTICAL_TUI_THEME")); v != "" {
		switch strings.ToLower(v) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		case "auto":
			// fall through to heuristics
		default:
			// Unknown value: ignore.
		}
	}

	if v := strings.TrimSpace(os.Getenv("LISTICAL_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}
}
