package ui

// IntentKind is the closed set of actions the reducer understands. Key
// events are translated into intents first, so every transition rule,
// in particular the "command mode only with a complete context" gate,
// is enforced in exactly one place and is testable without a terminal.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentQuit

	// Tree movement and shape
	IntentMoveUp
	IntentMoveDown
	IntentPageUp
	IntentPageDown
	IntentExpand
	IntentCollapse

	// Selection and search
	IntentSelect      // commit the row under the cursor
	IntentStartSearch // Browsing -> Searching
	IntentInsertRune  // query or argument character (carries Rune)
	IntentDeleteRune
	IntentMoveCursorLeft
	IntentMoveCursorRight
	IntentConfirm // Enter: commit search selection / operation / args / run
	IntentCancel  // Esc: back out one level

	// Command building
	IntentStartCommand // Browsing -> Command, gated on complete context
	IntentToggleDryRun
	IntentCopyCQL
	IntentScrollOutputUp
	IntentScrollOutputDown
)

// Intent is one reducer action; Rune is set for IntentInsertRune.
type Intent struct {
	Kind IntentKind
	Rune rune
}
