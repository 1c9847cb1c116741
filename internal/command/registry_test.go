package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/selection"
)

type stubCommand struct {
	EditBase
	intents []Intent
	result  ExecuteResult
	calls   int
}

func (s *stubCommand) Execute(Controller, Input) (ExecuteResult, error) {
	s.calls++
	return s.result, nil
}

func (s *stubCommand) Intents() []Intent { return s.intents }
func (s *stubCommand) ID() string        { return "stub" }

func TestRegistry_RegisterAliases(t *testing.T) {
	r := NewRegistry()
	cmd := &stubCommand{intents: []Intent{IntentInsertParagraph, IntentInsertLineBreak}}
	r.Register(cmd)

	for _, in := range cmd.intents {
		got, ok := r.Get(in)
		require.True(t, ok, in)
		require.Same(t, cmd, got)
	}
	_, ok := r.Get(IntentInsertText)
	require.False(t, ok)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	first := &stubCommand{intents: []Intent{IntentInsertText}}
	second := &stubCommand{intents: []Intent{IntentInsertText}}
	r.Register(first)
	r.Register(second)

	got, ok := r.Get(IntentInsertText)
	require.True(t, ok)
	require.Same(t, second, got)
}

func TestRegistry_DefaultCoversVocabulary(t *testing.T) {
	r := DefaultRegistry()
	for _, in := range Intents() {
		_, ok := r.Get(in)
		switch in {
		case IntentHistoryUndo, IntentHistoryRedo:
			require.False(t, ok, in)
		default:
			require.True(t, ok, in)
		}
	}
}

func TestRegistry_DispatchPassesThroughHistory(t *testing.T) {
	m := &mockController{}

	for _, in := range []Intent{IntentHistoryUndo, IntentHistoryRedo} {
		out, err := DefaultRegistry().Dispatch(m, Input{Type: in})
		require.NoError(t, err)
		require.Equal(t, PassThrough, out.Result)
		require.Nil(t, out.Command)
		require.False(t, out.Changed())
	}
	m.AssertExpectations(t)
}

func TestRegistry_DispatchPassesThroughComposition(t *testing.T) {
	r := NewRegistry()
	cmd := &stubCommand{intents: []Intent{IntentInsertCompositionText}}
	r.Register(cmd)

	out, err := r.Dispatch(&mockController{}, Input{Type: IntentInsertCompositionText, Data: "か", IsComposing: true})
	require.NoError(t, err)
	require.Equal(t, PassThrough, out.Result)
	require.Zero(t, cmd.calls)
}

func TestRegistry_DispatchExecutes(t *testing.T) {
	m := newMockController(shape{ctx: selection.CollapsedAtLeafEnd})
	m.On("InsertText", "!").Return(nil).Once()

	out, err := DefaultRegistry().Dispatch(m, Input{Type: IntentInsertReplacementText, Data: "!"})
	require.NoError(t, err)
	require.Equal(t, Executed, out.Result)
	require.Equal(t, "insert.text", out.Command.ID())
	require.True(t, out.Changed())
	m.AssertExpectations(t)
}

func TestRegistry_DispatchSkippedIsNotAChange(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubCommand{intents: []Intent{IntentDeleteByCut}, result: Skipped})

	out, err := r.Dispatch(&mockController{}, Input{Type: IntentDeleteByCut})
	require.NoError(t, err)
	require.Equal(t, Skipped, out.Result)
	require.False(t, out.Changed())
}

func TestParseIntent(t *testing.T) {
	for _, in := range Intents() {
		got, err := ParseIntent(string(in))
		require.NoError(t, err)
		require.Equal(t, in, got)
	}

	_, err := ParseIntent("insertFromDrop")
	require.ErrorIs(t, err, ErrUnknownIntent)
}

func TestExecuteResult_String(t *testing.T) {
	require.Equal(t, "executed", Executed.String())
	require.Equal(t, "pass-through", PassThrough.String())
	require.Equal(t, "skipped", Skipped.String())
	require.Equal(t, "unknown", ExecuteResult(9).String())
}
