package session

// Theme is the ambient presentation theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// PanelState is the settings panel state machine: {hidden, visible}.
// Toggle flips between the two; Close always forces hidden.
type PanelState string

const (
	PanelHidden  PanelState = "hidden"
	PanelVisible PanelState = "visible"
)

// Preferences holds session-local cosmetic toggles. FontSize and
// ResponseLength are placeholder selectors: held here, never transmitted to
// the gateway.
type Preferences struct {
	AutoScroll     bool       `json:"auto_scroll"`
	Theme          Theme      `json:"theme"`
	SettingsPanel  PanelState `json:"settings_panel"`
	FontSize       string     `json:"font_size"`
	ResponseLength string     `json:"response_length"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		AutoScroll:     true,
		Theme:          ThemeLight,
		SettingsPanel:  PanelHidden,
		FontSize:       "medium",
		ResponseLength: "medium",
	}
}

// ToggleTheme flips light<->dark. Two toggles round-trip to the original.
func (p *Preferences) ToggleTheme() {
	if p.Theme == ThemeLight {
		p.Theme = ThemeDark
	} else {
		p.Theme = ThemeLight
	}
}

// TogglePanel flips hidden<->visible.
func (p *Preferences) TogglePanel() {
	if p.SettingsPanel == PanelHidden {
		p.SettingsPanel = PanelVisible
	} else {
		p.SettingsPanel = PanelHidden
	}
}

// ClosePanel forces visible->hidden regardless of prior toggle count.
func (p *Preferences) ClosePanel() {
	p.SettingsPanel = PanelHidden
}

func (p *Preferences) SetAutoScroll(on bool) {
	p.AutoScroll = on
}
