package game

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"joseki/internal/domain/game"
	apperrors "joseki/internal/errors"
	"joseki/internal/httpresponse"
	gameuc "joseki/internal/usecase/game"
	"joseki/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
		hub:    newHub(),
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/games", g.HandleNewGame)
	r.Post("/games/import", g.HandleImportGame)
	r.Get("/games/public/{code}", g.HandleGetGameByPublicKey)
	r.Get("/games/{key}", g.HandleGetGame)
	r.Post("/games/{key}/moves", g.HandleMove)
	r.Get("/games/{key}/ws", g.HandleStartGame)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var request game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &request); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := g.gameUC.CreateGame(r.Context(), request)
	if err != nil {
		g.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleImportGame(w http.ResponseWriter, r *http.Request) {
	body, err := utils.ReadRequestBody(r)
	if err != nil {
		g.log.Error("Failed to read body: ", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	state, err := g.gameUC.ImportGame(r.Context(), string(body))
	if err != nil {
		g.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleGetGameByPublicKey(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetGameByPublicKey(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		g.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	gameKey := chi.URLParam(r, "key")

	var move game.Move
	if err := utils.DecodeJSONRequest(r, &move); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := g.gameUC.PlayMove(r.Context(), gameKey, move)
	if err != nil {
		g.writeError(w, err)
		return
	}

	g.hub.broadcast(gameKey, state)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleStartGame upgrades to a WebSocket. Every Move received is played and
// the resulting state is sent to all sockets watching the game; rejected
// moves are answered on the sending socket only.
func (g *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameKey := chi.URLParam(r, "key")

	state, err := g.gameUC.GetGame(ctx, gameKey)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}

	c := g.hub.join(gameKey, conn)
	defer func() {
		g.hub.leave(gameKey, c)
		_ = conn.Close()
	}()

	if err = c.send(state); err != nil {
		g.log.Error("write error: ", err)
		return
	}

	for {
		var move game.Move
		if err = conn.ReadJSON(&move); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Error("read error: ", err)
			}
			return
		}

		state, err := g.gameUC.PlayMove(ctx, gameKey, move)
		if err != nil {
			if errors.Is(err, apperrors.ErrInternal) {
				g.log.Error(err)
			}
			if err = c.send(game.MoveErrorResponse{Move: move, Error: err.Error()}); err != nil {
				g.log.Error("write error: ", err)
				return
			}
			continue
		}

		g.hub.broadcast(gameKey, state)
	}
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrGameNotFound):
		httpresponse.WriteErrorWithStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrIllegalMove), errors.Is(err, apperrors.ErrKoViolation):
		httpresponse.WriteErrorWithStatus(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrBadCoordinate),
		errors.Is(err, apperrors.ErrBadColor),
		errors.Is(err, apperrors.ErrBadBoardSize):
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, err.Error())
	default:
		g.log.Error(err)
		httpresponse.WriteInternalErrorResponse(w)
	}
}
