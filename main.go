package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	Cells           []cellDTO         `json:"cells"`
	InHand          []pieceDTO        `json:"in_hand"`
	History         []historyEntryDTO `json:"history"`
	AiThinking      bool              `json:"ai_thinking"`
	LastMessage     string            `json:"last_message"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode           string `json:"mode"`
	HumanPlayer    int    `json:"human_player"`
	TournamentRule bool   `json:"tournament_rule"`
}

type hexDTO struct {
	Q int `json:"q"`
	R int `json:"r"`
}

type pieceDTO struct {
	ID     int    `json:"id"`
	Player int    `json:"player"`
	Bug    string `json:"bug"`
}

type cellDTO struct {
	Q     int        `json:"q"`
	R     int        `json:"r"`
	Stack []pieceDTO `json:"stack"`
}

type apiMove struct {
	Piece int     `json:"piece"`
	From  *hexDTO `json:"from,omitempty"`
	To    *hexDTO `json:"to,omitempty"`
	Pass  bool    `json:"pass,omitempty"`
}

type historyEntryDTO struct {
	Move      apiMove `json:"move"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Depth     int     `json:"depth"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	History         []historyEntryDTO `json:"history"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type ttCacheStatusResponse struct {
	Count int `json:"count"`
}

func main() {
	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		controller.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
			controller.ResetForConfigChange()
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		move, ok := moveFromAPI(payload)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid move"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(move)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ttCacheStatusResponse{Count: controller.AiCacheSize()})
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		controller.ResetForConfigChange()
		writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Println("hivemind backend listening on :8080")
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		_ = client.writePump(conn)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		case "move":
			var payload apiMove
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			if move, ok := moveFromAPI(payload); ok {
				controller.QueueHumanMove(move)
			}
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          GetConfig(),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		Cells:           cellsToDTO(state.Board),
		InHand:          inHandToDTO(state),
		History:         historyToDTO(controller.History()),
		AiThinking:      controller.AiThinking(),
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	settings.TournamentRule = dto.TournamentRule
	switch dto.Mode {
	case "ai_vs_ai":
		settings.WhiteType = PlayerAI
		settings.BlackType = PlayerAI
	case "human_vs_human":
		settings.WhiteType = PlayerHuman
		settings.BlackType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.WhiteType = PlayerAI
			settings.BlackType = PlayerHuman
		} else {
			settings.WhiteType = PlayerHuman
			settings.BlackType = PlayerAI
		}
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	mode := "ai_vs_human"
	if settings.WhiteType == PlayerAI && settings.BlackType == PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.WhiteType == PlayerHuman && settings.BlackType == PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.WhiteType == PlayerHuman && settings.BlackType != PlayerHuman {
		humanPlayer = 1
	} else if settings.BlackType == PlayerHuman && settings.WhiteType != PlayerHuman {
		humanPlayer = 2
	} else if settings.WhiteType == PlayerHuman && settings.BlackType == PlayerHuman {
		humanPlayer = 1
	}
	return GameSettingsDTO{Mode: mode, HumanPlayer: humanPlayer, TournamentRule: settings.TournamentRule}
}

func moveFromAPI(payload apiMove) (Move, bool) {
	if payload.Pass {
		return PassMove, true
	}
	if payload.Piece < 0 || payload.Piece >= totalPieces || payload.To == nil {
		return Move{}, false
	}
	piece := PieceID(payload.Piece)
	to := Hex{Q: payload.To.Q, R: payload.To.R}
	if payload.From == nil {
		return PlaceMove(piece, to), true
	}
	return SlideMove(piece, Hex{Q: payload.From.Q, R: payload.From.R}, to), true
}

func moveToAPI(move Move) apiMove {
	if move.Pass {
		return apiMove{Piece: int(NoPiece), Pass: true}
	}
	dto := apiMove{Piece: int(move.Piece), To: &hexDTO{Q: move.To.Q, R: move.To.R}}
	if !move.FromHand {
		dto.From = &hexDTO{Q: move.From.Q, R: move.From.R}
	}
	return dto
}

func pieceToDTO(piece PieceID) pieceDTO {
	return pieceDTO{
		ID:     int(piece),
		Player: playerToInt(piece.Owner()),
		Bug:    piece.Bug().String(),
	}
}

func cellsToDTO(board Board) []cellDTO {
	cells := make([]Hex, 0, board.CountCells())
	for hex := range board.stacks {
		cells = append(cells, hex)
	}
	sortHexes(cells)
	out := make([]cellDTO, 0, len(cells))
	for _, hex := range cells {
		stack := board.StackAt(hex)
		pieces := make([]pieceDTO, 0, len(stack))
		for _, piece := range stack {
			pieces = append(pieces, pieceToDTO(piece))
		}
		out = append(out, cellDTO{Q: hex.Q, R: hex.R, Stack: pieces})
	}
	return out
}

func inHandToDTO(state GameState) []pieceDTO {
	out := make([]pieceDTO, 0, totalPieces)
	for i := 0; i < totalPieces; i++ {
		if state.InHand[i] {
			out = append(out, pieceToDTO(PieceID(i)))
		}
	}
	return out
}

func playerToInt(player PlayerColor) int {
	if player == PlayerWhite {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusWhiteWon:
		return 1
	case StatusBlackWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusWhiteWon:
		return "white_won"
	case StatusBlackWon:
		return "black_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Move:      moveToAPI(entry.Move),
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		History:         historyToDTO(controller.History()),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
