package command

import (
	"errors"
	"fmt"

	"github.com/zjrosen/spanedit/internal/content"
)

// ErrUnknownIntent is returned by ParseIntent for names outside the vocabulary.
var ErrUnknownIntent = errors.New("unknown intent")

// Intent names one kind of edit the host surface reports.
type Intent string

const (
	IntentInsertText            Intent = "insertText"
	IntentInsertReplacementText Intent = "insertReplacementText"
	IntentInsertCompositionText Intent = "insertCompositionText"
	IntentInsertParagraph       Intent = "insertParagraph"
	IntentInsertLineBreak       Intent = "insertLineBreak"
	IntentDeleteContentBackward Intent = "deleteContentBackward"
	IntentDeleteContentForward  Intent = "deleteContentForward"
	IntentDeleteWordBackward    Intent = "deleteWordBackward"
	IntentDeleteByCut           Intent = "deleteByCut"
	IntentInsertFromPaste       Intent = "insertFromPaste"
	IntentHistoryUndo           Intent = "historyUndo"
	IntentHistoryRedo           Intent = "historyRedo"
)

var intents = []Intent{
	IntentInsertText,
	IntentInsertReplacementText,
	IntentInsertCompositionText,
	IntentInsertParagraph,
	IntentInsertLineBreak,
	IntentDeleteContentBackward,
	IntentDeleteContentForward,
	IntentDeleteWordBackward,
	IntentDeleteByCut,
	IntentInsertFromPaste,
	IntentHistoryUndo,
	IntentHistoryRedo,
}

// Intents returns the whole vocabulary in a stable order.
func Intents() []Intent {
	out := make([]Intent, len(intents))
	copy(out, intents)
	return out
}

// ParseIntent validates an intent name.
func ParseIntent(s string) (Intent, error) {
	for _, in := range intents {
		if string(in) == s {
			return in, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIntent, s)
}

// Input is one edit notification from the host surface.
type Input struct {
	Type Intent
	// Data is the text carried by insert intents.
	Data string
	// Fragment is the detached content carried by insertFromPaste.
	Fragment *content.Fragment
	// IsComposing is set while an input method composition is in progress.
	IsComposing bool
}
