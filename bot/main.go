package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
)

func main() {
	// stdout belongs to the referee; everything else goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetPrefix("")

	cfg := LoadConfigFromEnv()
	sessionID := uuid.NewString()
	engine := NewEngine(cfg)
	reader := NewProtocolReader(os.Stdin)
	writer := NewMoveWriter(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The tracer stays nil without a debug address, and the turn loop
	// then skips board serialization entirely.
	var tracer *decisionTracer
	if cfg.DebugAddr != "" {
		hub := NewHub()
		go hub.Run(ctx.Done())
		logbook := newDecisionLog(64)
		tracer = &decisionTracer{session: sessionID, logbook: logbook, hub: hub}
		startDebugServer(ctx, cfg.DebugAddr, newDebugRouter(engine, hub, logbook, sessionID))
	}

	log.Printf("[bot] session=%s strategy=%s budget=%dms", sessionID, engine.Strategy(), cfg.TimeBudgetMs)

	turn := 0
	for {
		select {
		case <-ctx.Done():
			log.Printf("[bot] interrupted after %d turns", turn)
			return
		default:
		}

		state, err := reader.ReadTurn()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			log.Printf("[bot] game over after %d turns", turn)
			return
		}
		if err != nil {
			// The stream cannot be resynced after a malformed block;
			// concede the turn and stop.
			log.Printf("[bot] protocol error: %v", err)
			_ = writer.WriteNoMove()
			return
		}

		turn++
		decision := engine.Decide(state)
		if decision.HasMove {
			err = writer.WriteMove(decision.Move)
		} else {
			err = writer.WriteNoMove()
		}
		if err != nil {
			log.Printf("[bot] write failed: %v", err)
			return
		}

		if cfg.LogDecisions {
			logDecision(turn, state, decision)
		}
		tracer.Record(turn, state, decision, engine.CacheStats())
	}
}

func logDecision(turn int, state GameState, decision Decision) {
	if !decision.HasMove {
		log.Printf("[bot] turn=%d no legal move (candidates=0) elapsed=%s", turn, decision.Elapsed)
		return
	}
	log.Printf("[bot] turn=%d move=(%d,%d) score=%.1f candidates=%d scored=%d pruned=%d board=%016x elapsed=%s",
		turn, decision.Move.X, decision.Move.Y, decision.Breakdown.Total,
		decision.Stats.Candidates, decision.Stats.FullyScored, decision.Stats.Pruned,
		decision.BoardHash, decision.Elapsed)
}

func buildDecisionPayload(sessionID string, turn int, state GameState, decision Decision, cache CacheStats) decisionPayload {
	rows := make([]string, 0, state.Grid.Height())
	for y := 0; y < state.Grid.Height(); y++ {
		row := make([]byte, state.Grid.Width())
		for x := 0; x < state.Grid.Width(); x++ {
			row[x] = state.Grid.At(x, y).Char()
		}
		rows = append(rows, string(row))
	}
	return decisionPayload{
		Session:       sessionID,
		Turn:          turn,
		Player:        state.Player.String(),
		Board:         rows,
		BoardHash:     decision.BoardHash,
		HasMove:       decision.HasMove,
		Move:          decision.Move,
		Breakdown:     decision.Breakdown,
		Stats:         decision.Stats,
		ElapsedMs:     float64(decision.Elapsed.Microseconds()) / 1000.0,
		Cache:         cache,
		OwnCells:      state.Grid.CountTerritory(state.Player),
		OpponentCells: state.Grid.CountTerritory(state.Player.Opponent()),
	}
}
