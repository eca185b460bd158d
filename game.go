package main

import (
	"log"
	"time"
)

type Game struct {
	settings    GameSettings
	rules       Rules
	state       GameState
	history     MoveHistory
	whitePlayer IPlayer
	blackPlayer IPlayer
	turnStart   time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	log.Printf("[game] new game: white=%s black=%s tournament_rule=%v",
		playerTypeString(settings.WhiteType), playerTypeString(settings.BlackType), settings.TournamentRule)
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) createPlayers() {
	if g.settings.WhiteType == PlayerAI {
		g.whitePlayer = NewAIPlayer()
	} else {
		g.whitePlayer = NewHumanPlayer()
	}
	if g.settings.BlackType == PlayerAI {
		g.blackPlayer = NewAIPlayer()
	} else {
		g.blackPlayer = NewHumanPlayer()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) currentPlayer() IPlayer {
	if g.state.ToMove == PlayerWhite {
		return g.whitePlayer
	}
	return g.blackPlayer
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) SubmitHumanMove(move Move) bool {
	human, ok := g.currentPlayer().(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

// TryApplyMove validates and applies a move for the side to move, records
// history and resolves the game status.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	return g.applyMove(move, 0)
}

func (g *Game) applyMove(move Move, searchDepth int) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	if ok, reason := g.rules.IsLegal(&g.state, move, g.state.ToMove); !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	mover := g.state.ToMove
	g.rules.ApplyMove(&g.state, move)
	g.history.Push(HistoryEntry{
		Move:      move,
		Player:    mover,
		ElapsedMs: elapsedMs,
		IsAi:      isAiMove,
		Depth:     searchDepth,
	})
	log.Printf("[game] %s played %s (%.0fms, ai=%v)", mover, move, elapsedMs, isAiMove)

	if status := g.rules.Winner(&g.state); status != StatusRunning {
		g.state.Status = status
		log.Printf("[game] finished: %s", statusToString(status))
	}
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances the game one step: applies a pending human move, or drives
// the AI worker. Returns true when a move was applied.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	switch player := g.currentPlayer().(type) {
	case *HumanPlayer:
		if !player.HasPendingMove() {
			return false
		}
		applied, _ := g.TryApplyMove(player.TakePendingMove())
		return applied
	case *AIPlayer:
		if player.HasMoveReady() {
			move, ok := player.TakeMove()
			if !ok {
				// Budget expired before any depth finished; fall back to
				// the first legal move rather than stalling the game.
				move = g.rules.GenerateMoves(&g.state, NoMove, NoMove, NoMove)[0]
			}
			applied, _ := g.applyMove(move, player.LastSearchDepth())
			return applied
		}
		if !player.IsThinking() {
			player.StartThinking(g.state.Clone(), g.rules)
		}
		return false
	default:
		return false
	}
}

func (g *Game) AiThinking() bool {
	if ai, ok := g.currentPlayer().(*AIPlayer); ok {
		return ai.IsThinking()
	}
	return false
}

func (g *Game) AiCacheSize() int {
	size := 0
	if ai, ok := g.whitePlayer.(*AIPlayer); ok {
		size += ai.CacheSize()
	}
	if ai, ok := g.blackPlayer.(*AIPlayer); ok {
		size += ai.CacheSize()
	}
	return size
}

func (g *Game) ResetForConfigChange() {
	if ai, ok := g.whitePlayer.(*AIPlayer); ok {
		ai.ResetForConfigChange()
	}
	if ai, ok := g.blackPlayer.(*AIPlayer); ok {
		ai.ResetForConfigChange()
	}
}

func playerTypeString(t PlayerType) string {
	if t == PlayerAI {
		return "ai"
	}
	return "human"
}
