package deck

// Mode is a review direction. Performance is tracked per card per mode.
type Mode struct {
	ID          string
	Name        string
	Description string
}

const (
	ModeRecognition = "LM-recognition"
	ModeProduction  = "LM-production"
	ModeListening   = "LM-listening"
)

// DefaultMode is used when no mode, or an unknown one, is configured.
const DefaultMode = ModeRecognition

var modes = []Mode{
	{ID: ModeRecognition, Name: "Recognition", Description: "See the hanzi, recall the meaning"},
	{ID: ModeProduction, Name: "Production", Description: "See the meaning, type the pinyin"},
	{ID: ModeListening, Name: "Listening", Description: "Hear the word, recall the meaning"},
}

// Modes returns every supported mode in display order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// LookupMode returns the mode with the given id.
func LookupMode(id string) (Mode, bool) {
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// ParseMode returns the mode with the given id, or the default mode.
func ParseMode(id string) Mode {
	if m, ok := LookupMode(id); ok {
		return m
	}
	m, _ := LookupMode(DefaultMode)
	return m
}
