package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/quoridor/bot"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/move"
	"github.com/domino14/quoridor/movegen"
	"github.com/domino14/quoridor/notation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is a request from the client. Moves in payloads are written
// in First's board coordinates.
type WSMessage struct {
	Type    string          `json:"type"` // new, state, moves, move, undo, engine, ping
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WSResponse struct {
	Type    string `json:"type"` // result, error, pong
	ID      string `json:"id,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type NewRequest struct {
	// Position optionally starts from a position in the harness text
	// format, First to move.
	Position string `json:"position,omitempty"`
}

type MoveRequest struct {
	Move string `json:"move"`
}

type EngineRequest struct {
	Play     bool `json:"play"`
	TimeMs   int  `json:"time_ms,omitempty"`
	MaxDepth int  `json:"max_depth,omitempty"`
}

type StateResponse struct {
	Position      string `json:"position"`
	Board         string `json:"board"`
	Turn          string `json:"turn"`
	Plies         int    `json:"plies"`
	Over          bool   `json:"over"`
	Winner        string `json:"winner,omitempty"`
	Repetitions   int    `json:"repetitions"`
	Hash          string `json:"hash"`
	FirstWalls    int    `json:"first_walls"`
	SecondWalls   int    `json:"second_walls"`
	MoverDistance int    `json:"mover_distance"`
	OtherDistance int    `json:"other_distance"`
}

type EngineResponse struct {
	Move  string        `json:"move"`
	Ties  []string      `json:"ties"`
	Score int           `json:"score"`
	Depth int           `json:"depth"`
	Nodes uint64        `json:"nodes"`
	State StateResponse `json:"state"`
}

type MovesResponse struct {
	Moves []string `json:"moves"`
}

// WSClient is one connection and its game.
type WSClient struct {
	conn     *websocket.Conn
	server   *Server
	sendChan chan WSResponse

	game *game.Game
	bot  *bot.Bot
}

func (s *Server) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket-upgrade-failed")
		return
	}
	client := &WSClient{
		conn:     conn,
		server:   s,
		sendChan: make(chan WSResponse, 256),
		game:     game.NewGame(game.InitialState()),
		bot:      bot.NewBot(s.cfg),
	}
	log.Debug().Str("remote", r.RemoteAddr).Msg("websocket-connected")
	go client.writePump()
	client.readPump(r.Context())
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Debug().Err(err).Msg("websocket-write-failed")
			return
		}
	}
}

func (c *WSClient) readPump(ctx context.Context) {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket-read-ended")
			}
			return
		}
		c.handleMessage(ctx, msg)
	}
}

func (c *WSClient) handleMessage(ctx context.Context, msg WSMessage) {
	var payload any
	var err error
	switch msg.Type {
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
		return
	case "new":
		payload, err = c.handleNew(msg)
	case "state":
		payload = c.stateResponse()
	case "moves":
		payload = c.legalMoves()
	case "move":
		payload, err = c.handleMove(msg)
	case "undo":
		if !c.game.Undo() {
			err = errors.New("nothing to undo")
		}
		payload = c.stateResponse()
	case "engine":
		payload, err = c.handleEngine(ctx, msg)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: payload}
}

func decodePayload(msg WSMessage, v any) error {
	if len(msg.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (c *WSClient) handleNew(msg WSMessage) (any, error) {
	var req NewRequest
	if err := decodePayload(msg, &req); err != nil {
		return nil, err
	}
	start := game.InitialState()
	if req.Position != "" {
		var err error
		start, err = notation.ParseState(req.Position)
		if err != nil {
			return nil, err
		}
	}
	c.game = game.NewGame(start)
	return c.stateResponse(), nil
}

func (c *WSClient) handleMove(msg WSMessage) (any, error) {
	var req MoveRequest
	if err := decodePayload(msg, &req); err != nil {
		return nil, err
	}
	m, err := move.Parse(req.Move)
	if err != nil {
		return nil, err
	}
	if err := c.game.PlayMove(game.Orient(m, c.game.State().Turn)); err != nil {
		return nil, err
	}
	return c.stateResponse(), nil
}

func (c *WSClient) handleEngine(ctx context.Context, msg WSMessage) (any, error) {
	var req EngineRequest
	if err := decodePayload(msg, &req); err != nil {
		return nil, err
	}
	if req.TimeMs > 0 {
		c.bot.SetBudget(time.Duration(req.TimeMs) * time.Millisecond)
	}
	if req.MaxDepth > 0 {
		c.bot.SetMaxDepth(req.MaxDepth)
	}
	s := c.game.State()
	m, err := c.bot.BestMove(ctx, s)
	if err != nil {
		return nil, err
	}
	res := c.bot.LastResult()
	if req.Play {
		if err := c.game.PlayMove(m); err != nil {
			return nil, err
		}
	}
	return EngineResponse{
		Move:  game.Orient(m, s.Turn).String(),
		Ties:  lo.Map(res.Moves, func(t move.Move, _ int) string { return game.Orient(t, s.Turn).String() }),
		Score: res.Score,
		Depth: res.Depth,
		Nodes: res.Nodes,
		State: c.stateResponse(),
	}, nil
}

func (c *WSClient) legalMoves() MovesResponse {
	s := c.game.State()
	children := c.bot.Generator().Expand(s, nil)
	return MovesResponse{Moves: lo.Map(children, func(ch movegen.Child, _ int) string {
		return game.Orient(ch.Move, s.Turn).String()
	})}
}

func (c *WSClient) stateResponse() StateResponse {
	s := c.game.State()
	first := s.FirstView()
	resp := StateResponse{
		Position:    notation.FormatState(s),
		Board:       s.ToDisplayText(),
		Turn:        s.Turn.String(),
		Plies:       c.game.Turn(),
		Over:        c.game.Over(),
		Repetitions: c.game.Repetitions(),
		Hash:        fmt.Sprintf("%016x", s.Hash()),
		FirstWalls:  int(first.MyWalls),
		SecondWalls: int(first.OpponentWalls),
	}
	if w, ok := c.game.Winner(); ok {
		resp.Winner = w.String()
	}
	if mine, theirs, ok := s.Distances(); ok {
		resp.MoverDistance, resp.OtherDistance = mine, theirs
	}
	return resp
}
