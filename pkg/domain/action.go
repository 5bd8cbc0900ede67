package domain

// Action is the button pressed on the settings form.
type Action string

const (
	// ActionSave rebuilds the preview only; rotation is forced off.
	ActionSave Action = "save"

	// ActionSend rebuilds the chunks and starts rotating them on the display.
	ActionSend Action = "send"

	// ActionStop rebuilds the chunks and stops rotation, keeping the preview.
	ActionStop Action = "stop"
)

// ParseAction maps a form value to an Action. Unknown or empty values mean save.
func ParseAction(raw string) Action {
	switch Action(raw) {
	case ActionSend:
		return ActionSend
	case ActionStop:
		return ActionStop
	default:
		return ActionSave
	}
}

// Submission carries the raw form fields of a settings update.
// Numeric fields are kept as strings: parsing and clamping happen against
// the current layout so a bad value falls back to the previous one.
type Submission struct {
	Message  string `json:"message"`
	Enabled  bool   `json:"enabled"`
	Width    string `json:"width,omitempty"`
	Lines    string `json:"lines,omitempty"`
	Interval string `json:"interval,omitempty"`
	Indent   string `json:"indent,omitempty"`
	Action   Action `json:"action,omitempty"`
}

// Apply parses the numeric fields of s on top of l.
// Indent is clamped against the newly parsed width.
func (s Submission) Apply(l Layout) Layout {
	l.Width = ParseIntField(s.Width, l.Width, MinWidth, MaxWidth)
	l.Lines = ParseIntField(s.Lines, l.Lines, MinLines, MaxLines)
	l.Indent = ParseIntField(s.Indent, l.Indent, MinIndent, MaxIndentFor(l.Width))
	l.Interval = ParseFloatField(s.Interval, l.Interval, MinInterval, MaxInterval)
	return l
}

// View is everything the settings form renders after a GET or POST.
type View struct {
	Text         string   `json:"text"`
	Enabled      bool     `json:"enabled"`
	Active       bool     `json:"active"`
	Status       string   `json:"status,omitempty"`
	Layout       Layout   `json:"layout"`
	Preview      []string `json:"preview"`
	FilePath     string   `json:"file_path,omitempty"`
	Position     string   `json:"position"`
	SettingsPath string   `json:"settings_path,omitempty"`
}
