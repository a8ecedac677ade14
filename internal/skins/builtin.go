package skins

// Built-in skins. Unlock scores are levels reached.
func init() {
	Register(Skin{ID: DefaultID, Name: "Basic", Glyph: "●", Fill: "█", Color: "bright-cyan"})
	Register(Skin{ID: "cloud", Name: "Cloud", Glyph: "☁", Fill: "▓", Color: "white", UnlockScore: 5})
	Register(Skin{ID: "star", Name: "Star", Glyph: "★", Fill: "▒", Color: "bright-yellow", UnlockScore: 10})
	Register(Skin{ID: "rocket", Name: "Rocket", Glyph: "▲", Fill: "█", Color: "orange", UnlockScore: 20})
	Register(Skin{ID: "ghost", Name: "Ghost", Glyph: "◆", Fill: "░", Color: "bright-magenta", UnlockScore: 35})
}
