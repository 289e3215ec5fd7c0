// Package theme provides note colour palettes and the CSS themes used to style
// stickuid windows. CSS themes are loaded from ~/.config/stickui/themes/ with
// embedded fallbacks; palettes are a static table.
package theme
