package tui

import tea "github.com/charmbracelet/bubbletea"

// NoticeMsg carries a user-facing notification into the message loop.
type NoticeMsg struct {
	Text string
	Err  bool
}

// ProgramSink implements the dashboard's NotificationSink by sending
// notices into a running bubbletea program. Sends are safe from any
// goroutine, which matters because notifications originate from
// controller flows running outside the UI loop.
type ProgramSink struct {
	program *tea.Program
}

// NewProgramSink wraps a program.
func NewProgramSink(program *tea.Program) *ProgramSink {
	return &ProgramSink{program: program}
}

// Success implements dashboard.NotificationSink.
func (s *ProgramSink) Success(message string) {
	s.program.Send(NoticeMsg{Text: message})
}

// Error implements dashboard.NotificationSink.
func (s *ProgramSink) Error(message string) {
	s.program.Send(NoticeMsg{Text: message, Err: true})
}
