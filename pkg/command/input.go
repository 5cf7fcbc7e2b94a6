package command

import "strings"

// Phase is the command-builder sub-state: pick an operation, type its
// free-text arguments, then the command is ready to run.
type Phase int

const (
	PhaseSelectingOperation Phase = iota
	PhaseTypingArguments
	PhaseReady
)

// Input holds the command-builder state: the highlighted or chosen
// operation and the free-argument text with a cursor.
type Input struct {
	Phase     Phase
	Operation Operation
	Text      string
	Cursor    int
}

// NewInput returns an Input in the operation-selection phase.
func NewInput() Input {
	return Input{Phase: PhaseSelectingOperation}
}

// Choose fixes the operation and advances to argument typing.
func (in *Input) Choose(op Operation) {
	in.Operation = op
	in.Phase = PhaseTypingArguments
	in.Text = ""
	in.Cursor = 0
}

// ConfirmArgs advances from argument typing to ready.
func (in *Input) ConfirmArgs() {
	if in.Phase == PhaseTypingArguments {
		in.Phase = PhaseReady
	}
}

// Reset returns to operation selection and clears the typed text.
func (in *Input) Reset() {
	in.Phase = PhaseSelectingOperation
	in.Text = ""
	in.Cursor = 0
}

// InsertRune inserts a character at the cursor.
func (in *Input) InsertRune(r rune) {
	runes := []rune(in.Text)
	if in.Cursor > len(runes) {
		in.Cursor = len(runes)
	}
	runes = append(runes[:in.Cursor], append([]rune{r}, runes[in.Cursor:]...)...)
	in.Text = string(runes)
	in.Cursor++
}

// DeleteRune removes the character before the cursor.
func (in *Input) DeleteRune() {
	if in.Cursor == 0 {
		return
	}
	runes := []rune(in.Text)
	runes = append(runes[:in.Cursor-1], runes[in.Cursor:]...)
	in.Text = string(runes)
	in.Cursor--
}

// MoveLeft moves the cursor one rune left.
func (in *Input) MoveLeft() {
	if in.Cursor > 0 {
		in.Cursor--
	}
}

// MoveRight moves the cursor one rune right.
func (in *Input) MoveRight() {
	if in.Cursor < len([]rune(in.Text)) {
		in.Cursor++
	}
}

// Args splits the typed text into whitespace-separated free arguments.
func (in Input) Args() []string {
	return strings.Fields(in.Text)
}
