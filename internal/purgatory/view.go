package purgatory

import (
	"github.com/vovakirdan/purgatory/internal/dialogue"
)

// lineView keeps the line on screen for the renderer.
type lineView struct {
	line      dialogue.Line
	visible   bool
	fading    bool
	presented int
}

func newLineView() *lineView {
	return &lineView{}
}

// Present shows line.
func (v *lineView) Present(line dialogue.Line) {
	v.line = line
	v.visible = true
	v.fading = false
	v.presented++
}

// Dismiss starts fading the line out.
func (v *lineView) Dismiss() {
	v.fading = true
}

// Remove hides the line.
func (v *lineView) Remove() {
	v.visible = false
	v.fading = false
	v.line = dialogue.Line{}
}
