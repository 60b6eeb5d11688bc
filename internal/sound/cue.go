package sound

// Cue is a one-shot alert independent of the alarm asset.
type Cue interface {
	Ring()
}

// InlineWriter prints text without a line break. ui.Console satisfies it,
// so the bell shares the console's write lock with the clock display.
type InlineWriter interface {
	DisplayInline(text string)
}

// TerminalBell rings the terminal bell by writing BEL.
type TerminalBell struct {
	out InlineWriter
}

// NewTerminalBell creates a bell printing through out, usually the console.
func NewTerminalBell(out InlineWriter) *TerminalBell {
	return &TerminalBell{out: out}
}

// Ring writes BEL. It never fails an activation.
func (b *TerminalBell) Ring() {
	b.out.DisplayInline("\a")
}
