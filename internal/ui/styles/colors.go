// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package styles provides the visual styling system for the Friday TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Cyan - Brand color, header, Friday's accent
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#00D4FF"}

// CyanDeep - Darker cyan for backgrounds
var CyanDeep = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#164E63"}

// Purple - Voice capture accent, transcribed messages
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A855F7"}

// PurpleDeep - Darker purple for backgrounds
var PurpleDeep = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#4C1D95"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Red - Errors, recording indicator
var Red = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

// RedDeep - Darker red for backgrounds
var RedDeep = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#7F1D1D"}

// Emerald - Success states, ready indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Warnings, transcribing indicator
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#101623"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#0B1020"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#1F2A44"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E2E8F0"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#94A3B8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#64748B"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Cyan tones
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#BEF2FF"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#00D4FF"}

// Assistant message bubble - Neutral slate tones
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E2E8F0"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#334155"}

// Voice message accent - Purple border marks voice-originated messages
var VoiceBubbleBorder = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A855F7"}

// Error message - Red tones, used for failed turns
var ErrorBubbleFg = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FECACA"}
var ErrorBubbleBorder = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
