// Package ui holds terminal presentation helpers: lipgloss styled messages,
// a per-run status tracker and optional desktop notifications.
package ui
