// Package color provides terminal theming for stubctl.
//
// It holds the lipgloss styles shared by every command and switches styling
// on and off for both lipgloss and the go-pretty table renderer, so that
// piped or NO_COLOR output stays plain.
//
// # Styles
//
// Styles are organized by meaning rather than by color:
//   - TitleStyle: section headings such as the set name above a catalog
//   - SetStyle: capability set names
//   - SuccessStyle: positive outcomes such as a resolved match
//   - WarningStyle, ShadowedStyle: shadowed operations
//   - ErrorStyle: failures
//   - MutedStyle, HintStyle: de-emphasized text and "did you mean" hints
//
// Colors are adaptive: Initialize picks the dark or light variant.
//
// # Usage Example
//
//	color.Initialize(true)
//	color.Configure(cfg.ColorEnabled())
//	fmt.Println(color.TitleStyle.Render("Greeter"))
//
// # Environment Variables
//
//   - NO_COLOR: disables all styling regardless of configuration
package color
