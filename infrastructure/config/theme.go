package config

// Theme holds the visual styling settings. Colors are hex strings.
type Theme struct {
	// Background is the canvas background color
	Background string `toml:"background"`
	// Grid is the background grid color
	Grid string `toml:"grid"`
	// NodeBorder is the node border color
	NodeBorder string `toml:"node_border"`
	// NodeBorderFocused is the border color of the focused node
	NodeBorderFocused string `toml:"node_border_focused"`
	// Connection is the connection line color
	Connection string `toml:"connection"`
	// Text is the text color
	Text string `toml:"text"`
	// Accent highlights AI elements
	Accent string `toml:"accent"`

	// BorderWidth is the node border width in pixels
	BorderWidth float64 `toml:"border_width" validate:"gte=0"`
	// CornerRadius is the node corner radius in pixels
	CornerRadius float64 `toml:"corner_radius" validate:"gte=0"`

	// FontFamily is the UI font
	FontFamily string `toml:"font_family"`
	// FontSize is the UI font size in points
	FontSize float64 `toml:"font_size" validate:"gt=0"`
}

// DefaultTheme returns the dark default theme
func DefaultTheme() Theme {
	return Theme{
		Background:        "#0a0a0f",
		Grid:              "#1a1a2e",
		NodeBorder:        "#2d2d44",
		NodeBorderFocused: "#6366f1",
		Connection:        "#4f46e5",
		Text:              "#e2e8f0",
		Accent:            "#8b5cf6",
		BorderWidth:       2.0,
		CornerRadius:      8.0,
		FontFamily:        "Inter",
		FontSize:          14.0,
	}
}
