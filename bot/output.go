package main

import (
	"bufio"
	"fmt"
	"io"
)

// fallbackMove is what the referee expects when the bot cannot place
// the piece; it concedes the turn. The engine reports "no legal move"
// as a distinct outcome and only this writer turns it into the
// sentinel coordinate, so an illegal sentinel is never mistaken for a
// real placement inside the core.
var fallbackMove = Point{X: 0, Y: 0}

type MoveWriter struct {
	w *bufio.Writer
}

func NewMoveWriter(w io.Writer) *MoveWriter {
	return &MoveWriter{w: bufio.NewWriter(w)}
}

func (m *MoveWriter) WriteMove(p Point) error {
	if _, err := fmt.Fprintf(m.w, "%d %d\n", p.X, p.Y); err != nil {
		return err
	}
	return m.w.Flush()
}

func (m *MoveWriter) WriteNoMove() error {
	return m.WriteMove(fallbackMove)
}
