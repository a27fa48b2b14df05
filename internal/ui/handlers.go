package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xauspro/truth-or-dare/internal/logger"
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// handleServerMessage 处理服务器推送的消息
func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgAuthed:
		payload, err := protocol.ParsePayload[protocol.AuthedPayload](msg)
		if err != nil {
			return nil
		}
		m.name = payload.Name
		m.isPremium = payload.IsPremium
		m.enterLobby()

	case protocol.MsgPong:
		// 延迟已由 transport 层记录

	case protocol.MsgRoomCreated:
		payload, err := protocol.ParsePayload[protocol.RoomCreatedPayload](msg)
		if err != nil {
			return nil
		}
		m.phase = PhaseRoom
		m.gameID = payload.GameID
		m.inviteCode = payload.InviteCode
		m.categories = payload.Categories
		m.maxRounds = payload.MaxRounds
		m.isHost = true
		m.players = []protocol.PlayerInfo{{ID: m.userID, Name: m.name, IsHost: true}}

	case protocol.MsgRoomJoined:
		payload, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msg)
		if err != nil {
			return nil
		}
		m.phase = PhaseRoom
		m.gameID = payload.GameID
		m.inviteCode = payload.InviteCode
		m.players = payload.Players
		m.isHost = false

	case protocol.MsgPlayerJoined:
		payload, err := protocol.ParsePayload[protocol.PlayerJoinedPayload](msg)
		if err != nil {
			return nil
		}
		m.players = append(m.players, payload.Player)
		m.notice = fmt.Sprintf("%s 加入了房间", payload.Player.Name)

	case protocol.MsgSearching:
		payload, err := protocol.ParsePayload[protocol.SearchingPayload](msg)
		if err != nil {
			return nil
		}
		m.phase = PhaseMatching
		m.matchingStart = time.Now()
		m.waitingCount = payload.Waiting
		return matchTick()

	case protocol.MsgSearchCancelled:
		if m.phase == PhaseMatching {
			m.enterLobby()
		}

	case protocol.MsgMatchFound:
		payload, err := protocol.ParsePayload[protocol.MatchFoundPayload](msg)
		if err != nil {
			return nil
		}
		m.phase = PhasePlaying
		m.gameID = payload.GameID
		m.categories = payload.Categories
		m.currentPlayer = payload.CurrentPlayer
		m.round = 0
		m.task = nil
		m.players = []protocol.PlayerInfo{
			{ID: m.userID, Name: m.name},
			payload.Opponent,
		}

	case protocol.MsgGameStart:
		payload, err := protocol.ParsePayload[protocol.GameStartPayload](msg)
		if err != nil {
			return nil
		}
		m.phase = PhasePlaying
		m.gameID = payload.GameID
		m.players = payload.Players
		m.currentPlayer = payload.CurrentPlayer
		m.maxRounds = payload.MaxRounds
		m.round = 0
		m.task = nil

	case protocol.MsgTask:
		payload, err := protocol.ParsePayload[protocol.TaskPayload](msg)
		if err != nil {
			return nil
		}
		m.task = payload

	case protocol.MsgTurn:
		payload, err := protocol.ParsePayload[protocol.TurnPayload](msg)
		if err != nil {
			return nil
		}
		m.currentPlayer = payload.PlayerID
		m.round = payload.Round
		m.maxRounds = payload.MaxRounds
		m.task = nil

	case protocol.MsgGameOver:
		payload, err := protocol.ParsePayload[protocol.GameOverPayload](msg)
		if err != nil {
			return nil
		}
		m.phase = PhaseGameOver
		m.finishedRounds = payload.Rounds
		m.task = nil

	case protocol.MsgStatsResult:
		payload, err := protocol.ParsePayload[protocol.StatsResultPayload](msg)
		if err != nil {
			return nil
		}
		m.phase = PhaseStats
		m.stats = payload

	case protocol.MsgProfileSaved:
		if m.phase == PhaseProfile || m.phase == PhaseCategories {
			m.enterLobby()
		}
		m.notice = "✅ 设置已保存"

	case protocol.MsgError:
		payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return nil
		}
		m.errMsg = payload.Message
		logger.LogError("server error %d: %s", payload.Code, payload.Message)
		return clearErrorAfter(3 * time.Second)

	default:
		logger.LogInfo("unhandled message type: %s", msg.Type)
	}

	return nil
}
