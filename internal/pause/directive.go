package pause

import "fmt"

// Literal lines of the directive. Downstream tools match on these strings to
// detect a pause added by post-processing.
const (
	TypeComment       = ";TYPE:CUSTOM"
	ProvenanceComment = ";pause added by post processing"
	ScriptComment     = ";script: PauseAtLayerCraftBot.py"
	BeepCommand       = "M300 P2000 S50 ;beep"

	// PauseCommand is the vendor pause instruction; the printer shows the
	// text that follows it.
	PauseCommand = "G197"
	pauseSuffix  = " ;pause"
)

// Directive is the ordered group of lines spliced in before the pause layer.
type Directive []string

// NewDirective builds the directive for the given settings.
func NewDirective(s Settings) Directive {
	d := Directive{TypeComment, ProvenanceComment, ScriptComment}
	if s.ShouldBeep {
		d = append(d, BeepCommand)
	}
	return append(d, PauseLine(FormatMessage(s.Message, s.PauseLayer)))
}

// PauseLine renders the pause command carrying message.
func PauseLine(message string) string {
	return fmt.Sprintf("%s %s%s", PauseCommand, message, pauseSuffix)
}
