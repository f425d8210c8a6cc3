// Package engine provides the turn simulation and the loop that drives it.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultEpochLength is the number of turns between epoch callbacks.
const DefaultEpochLength = 100

// Engine drives turns forward on the calling goroutine.
type Engine struct {
	Turn        uint64        // Last turn run (monotonic)
	MaxTurns    uint64        // Stop after this turn; 0 runs until cancelled
	Interval    time.Duration // Pause between turns; 0 runs flat out
	EpochLength uint64        // Turns per epoch; 0 disables OnEpoch

	// Callbacks, set during setup.
	OnTurn  func(turn uint64) // Every turn
	OnEpoch func(turn uint64) // Every EpochLength turns
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		EpochLength: DefaultEpochLength,
	}
}

// Run steps turns until MaxTurns is reached or ctx is cancelled. It returns
// ctx.Err() on cancellation and nil when the turn limit is reached.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("turn engine started", "turn", e.Turn, "max_turns", e.MaxTurns, "interval", e.Interval)

	var timer *time.Timer
	if e.Interval > 0 {
		timer = time.NewTimer(e.Interval)
		defer timer.Stop()
	}

	for e.MaxTurns == 0 || e.Turn < e.MaxTurns {
		if err := ctx.Err(); err != nil {
			slog.Info("turn engine stopped", "turn", e.Turn, "reason", err)
			return err
		}

		e.Step()

		if timer != nil {
			timer.Reset(e.Interval)
			select {
			case <-ctx.Done():
				slog.Info("turn engine stopped", "turn", e.Turn, "reason", ctx.Err())
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	slog.Info("turn engine finished", "turn", e.Turn)
	return nil
}

// Step advances by exactly one turn.
func (e *Engine) Step() {
	e.Turn++

	if e.OnTurn != nil {
		e.OnTurn(e.Turn)
	}
	if e.EpochLength > 0 && e.Turn%e.EpochLength == 0 && e.OnEpoch != nil {
		e.OnEpoch(e.Turn)
	}
}

// TurnLabel returns a human-readable epoch/turn string for a turn number.
func TurnLabel(turn, epochLength uint64) string {
	if epochLength == 0 || turn == 0 {
		return fmt.Sprintf("Turn %d", turn)
	}
	epoch := (turn-1)/epochLength + 1
	inEpoch := (turn-1)%epochLength + 1
	return fmt.Sprintf("Epoch %d, Turn %d", epoch, inEpoch)
}
