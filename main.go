package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BoardSize       int               `json:"board_size"`
	WinLength       int               `json:"win_length"`
	History         []historyEntryDTO `json:"history"`
	CacheSize       int               `json:"cache_size"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	HumanPlayer int  `json:"human_player"`
	HumanStarts bool `json:"human_starts"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	FromCache bool    `json:"from_cache"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type cacheStatusResponse struct {
	Count  int   `json:"count"`
	Limit  int   `json:"limit"`
	Sweeps int64 `json:"sweeps"`
}

type cacheEntryDTO struct {
	Board  string `json:"board"`
	Move   Move   `json:"move"`
	Depth  int    `json:"depth"`
	Origin string `json:"origin"`
	Hits   uint32 `json:"hits"`
}

type cacheEntriesResponse struct {
	Items  []cacheEntryDTO `json:"items"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
	Total  int             `json:"total"`
}

func main() {
	var persistOnce sync.Once

	controller := NewGameController(DefaultGameSettings())
	persistOnShutdown := func(reason string) {
		persistOnce.Do(func() {
			log.Printf("[backend] persisting caches on %s", reason)
			persistCaches(controller)
		})
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[backend] panic recovered in main: %v", recovered)
			persistOnShutdown("panic")
		}
	}()

	loadPersistedCaches(controller)
	defer persistOnShutdown("exit")

	hub := NewHub()
	controller.StartPrecompute()
	controller.SetPrecomputePublisher(hub.PublishPrecompute)
	defer controller.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

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
		controller.StartGame(settingsFromDTO(payload.Settings, DefaultGameSettings()))
		status := controllerStatus(controller)
		writeJSON(w, http.StatusOK, status)
		hub.broadcastStatus <- status
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(NewMove(payload.X, payload.Y))
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		broadcastAfterMove(hub, controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/ai/move", func(w http.ResponseWriter, r *http.Request) {
		move, applied, errMsg := controller.PlayAIMove()
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		broadcastAfterMove(hub, controller)
		status := controllerStatus(controller)
		writeJSON(w, http.StatusOK, struct {
			Move   Move           `json:"move"`
			Status StatusResponse `json:"status"`
		}{Move: move, Status: status})
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Config *Config `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cacheStatusResponse{
			Count:  controller.Cache().Len(),
			Limit:  GetConfig().AiCacheLimit,
			Sweeps: controller.PrecomputeSweeps(),
		})
	})
	r.Delete("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		controller.Cache().Clear()
		writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
	})
	r.Delete("/api/cache/{fingerprint}", func(w http.ResponseWriter, r *http.Request) {
		key := Fingerprint(chi.URLParam(r, "fingerprint"))
		if !key.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid fingerprint"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": controller.Cache().Delete(key)})
	})
	r.Get("/api/cache/entries", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}
		if offset < 0 {
			offset = 0
		}
		writeJSON(w, http.StatusOK, cacheEntries(controller.Cache(), offset, limit))
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
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

	log.Println("backend listening on :8080")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
	}

	cancel()
	controller.Close()
	persistOnShutdown("shutdown")
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
	}
}

func broadcastAfterMove(hub *Hub, controller *GameController) {
	if entry, ok := controller.LatestHistoryEntry(); ok {
		hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
	}
	hub.broadcastStatus <- controllerStatus(controller)
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := NewClient(hub)
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		client.writePump(conn)
	}()

	armReadKeepalive(conn)
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
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:        settingsToDTO(controller.Settings()),
		Config:          GetConfig(),
		Board:           boardToSlice(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		BoardSize:       BoardSize,
		WinLength:       WinLength,
		History:         historyToDTO(controller.History()),
		CacheSize:       controller.Cache().Len(),
		TurnStartedAtMs: controller.TurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.HumanPlayer {
	case 1:
		settings.HumanPlayer = PlayerX
	case 2:
		settings.HumanPlayer = PlayerO
	}
	settings.HumanStarts = dto.HumanStarts
	return settings
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	return GameSettingsDTO{
		HumanPlayer: playerToInt(settings.HumanPlayer),
		HumanStarts: settings.HumanStarts,
	}
}

func cacheEntries(cache *ResponseCache, offset, limit int) cacheEntriesResponse {
	snapshot := cache.Snapshot()
	total := len(snapshot)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	items := make([]cacheEntryDTO, 0, end-offset)
	for _, item := range snapshot[offset:end] {
		items = append(items, cacheEntryDTO{
			Board:  item.Key.Short(),
			Move:   item.Entry.Move,
			Depth:  item.Entry.Depth,
			Origin: item.Entry.Origin,
			Hits:   item.Entry.Hits,
		})
	}
	return cacheEntriesResponse{Items: items, Offset: offset, Limit: limit, Total: total}
}

func boardToSlice(board Board) [][]int {
	size := board.Size()
	out := make([][]int, size)
	for y := 0; y < size; y++ {
		row := make([]int, size)
		for x := 0; x < size; x++ {
			row[x] = cellToInt(board.At(x, y))
		}
		out[y] = row
	}
	return out
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellX:
		return 1
	case CellO:
		return 2
	default:
		return 0
	}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerX {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusXWon:
		return 1
	case StatusOWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusXWon:
		return "x_won"
	case StatusOWon:
		return "o_won"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	out := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, historyEntryToDTO(entry))
	}
	return out
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		FromCache: entry.FromCache,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
