package command

import (
	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/spanedit/internal/content"
	"github.com/zjrosen/spanedit/internal/selection"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) CaretContext() selection.CaretContext {
	return m.Called().Get(0).(selection.CaretContext)
}

func (m *mockController) IsParagraphStart() bool { return m.Called().Bool(0) }
func (m *mockController) IsParagraphEnd() bool   { return m.Called().Bool(0) }
func (m *mockController) IsFirstParagraph() bool { return m.Called().Bool(0) }
func (m *mockController) IsLastParagraph() bool  { return m.Called().Bool(0) }

func (m *mockController) InsertText(text string) error       { return m.Called(text).Error(0) }
func (m *mockController) ReplaceText(text string) error      { return m.Called(text).Error(0) }
func (m *mockController) ReplaceTextSpans(text string) error { return m.Called(text).Error(0) }
func (m *mockController) ReplaceLineBreak(text string) error { return m.Called(text).Error(0) }

func (m *mockController) SplitParagraph() error        { return m.Called().Error(0) }
func (m *mockController) InsertParagraphBefore() error { return m.Called().Error(0) }
func (m *mockController) InsertParagraphAfter() error  { return m.Called().Error(0) }
func (m *mockController) ReplaceWithParagraph() error  { return m.Called().Error(0) }

func (m *mockController) RemoveSelected(opts selection.RemoveOptions) error {
	return m.Called(opts).Error(0)
}
func (m *mockController) RemoveBackwardText() error      { return m.Called().Error(0) }
func (m *mockController) RemoveForwardText() error       { return m.Called().Error(0) }
func (m *mockController) RemoveWordBackward() error      { return m.Called().Error(0) }
func (m *mockController) MergeBackwardParagraph() error  { return m.Called().Error(0) }
func (m *mockController) MergeForwardParagraph() error   { return m.Called().Error(0) }
func (m *mockController) RemoveBackwardParagraph() error { return m.Called().Error(0) }
func (m *mockController) RemoveForwardParagraph() error  { return m.Called().Error(0) }

func (m *mockController) InsertPaste(f *content.Fragment) error      { return m.Called(f).Error(0) }
func (m *mockController) ReplaceWithPaste(f *content.Fragment) error { return m.Called(f).Error(0) }

// shape configures the predicates a decision table may read. Predicates are
// registered with Maybe so a table that short-circuits does not fail.
type shape struct {
	ctx            selection.CaretContext
	paragraphStart bool
	paragraphEnd   bool
	first          bool
	last           bool
}

func newMockController(s shape) *mockController {
	m := &mockController{}
	m.On("CaretContext").Return(s.ctx).Maybe()
	m.On("IsParagraphStart").Return(s.paragraphStart).Maybe()
	m.On("IsParagraphEnd").Return(s.paragraphEnd).Maybe()
	m.On("IsFirstParagraph").Return(s.first).Maybe()
	m.On("IsLastParagraph").Return(s.last).Maybe()
	return m
}
