// Package ui implements the terminal client interface.
package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xauspro/truth-or-dare/internal/logger"
	"github.com/xauspro/truth-or-dare/internal/protocol"
	"github.com/xauspro/truth-or-dare/internal/transport"
)

// Model 在线客户端的主模型
type Model struct {
	client *transport.Client
	phase  GamePhase
	errMsg string
	notice string

	// 玩家信息
	userID    int64
	name      string
	isPremium bool

	// 房间状态
	gameID     int64
	inviteCode string
	players    []protocol.PlayerInfo
	isHost     bool

	// 对局状态
	currentPlayer int64
	round         int
	maxRounds     int
	categories    []string
	task          *protocol.TaskPayload

	// 匹配状态
	matchingStart time.Time
	waitingCount  int

	// 结算与统计
	finishedRounds int
	stats          *protocol.StatsResultPayload

	// UI 组件
	input  textinput.Model
	width  int
	height int
}

// NewModel 创建客户端主模型
func NewModel(serverURL string, userID int64) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入你的昵称"
	ti.CharLimit = 32
	ti.Width = 30
	ti.Focus()

	return &Model{
		client: transport.NewClient(serverURL),
		phase:  PhaseConnecting,
		userID: userID,
		input:  ti,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
	)
}

func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func matchTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return matchTickMsg{}
	})
}

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ConnectedMsg:
		m.phase = PhaseAuth
		m.client.StartHeartbeat()
		m.input.Reset()
		m.input.Placeholder = "输入你的昵称"
		m.input.Focus()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.errMsg = "与服务器的连接已断开，按 Ctrl+C 退出"
		logger.LogError("connection lost: %v", msg.Err)

	case ServerMessage:
		if cmd := m.handleServerMessage(msg.Msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case ClearErrorMsg:
		m.errMsg = ""

	case matchTickMsg:
		if m.phase == PhaseMatching {
			cmds = append(cmds, matchTick())
		}

	case tea.KeyMsg:
		handled, keyCmd := m.handleKey(msg)
		if keyCmd != nil {
			cmds = append(cmds, keyCmd)
		}
		if handled {
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey 按阶段分发键盘输入，返回是否已处理
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.client.Close()
		return true, tea.Quit
	case tea.KeyEsc:
		return m.handleEscape()
	case tea.KeyEnter:
		return m.handleEnter()
	}

	// 对局中的单键操作
	if m.phase == PhasePlaying {
		switch strings.ToLower(msg.String()) {
		case "t":
			if m.myTurn() && m.task == nil {
				_ = m.client.GetTask("truth")
			}
			return true, nil
		case "d":
			if m.myTurn() && m.task == nil {
				_ = m.client.GetTask("dare")
			}
			return true, nil
		}
	}

	if m.phase == PhaseRoom && m.isHost && strings.ToLower(msg.String()) == "s" {
		_ = m.client.StartRoom()
		return true, nil
	}

	if m.phase == PhaseStats || m.phase == PhaseGameOver {
		m.enterLobby()
		return true, nil
	}

	return false, nil
}

func (m *Model) handleEscape() (bool, tea.Cmd) {
	switch m.phase {
	case PhaseConnecting, PhaseAuth:
		m.client.Close()
		return true, tea.Quit
	case PhaseMatching:
		_ = m.client.CancelSearch()
		return true, nil
	case PhaseRoom, PhasePlaying, PhaseGameOver:
		_ = m.client.EndGame()
		m.enterLobby()
		return true, nil
	default:
		m.enterLobby()
		return true, nil
	}
}

func (m *Model) handleEnter() (bool, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.phase {
	case PhaseAuth:
		if value == "" {
			return true, nil
		}
		m.name = value
		m.input.Reset()
		_ = m.client.Auth(m.userID, value)
		return true, nil

	case PhaseLobby:
		return m.handleLobbyInput(value)

	case PhasePlaying:
		if m.myTurn() && m.task != nil {
			_ = m.client.TaskDone()
			m.task = nil
		}
		return true, nil

	case PhaseGameOver, PhaseStats:
		m.enterLobby()
		return true, nil

	case PhaseProfile:
		return m.handleProfileInput(value)

	case PhaseCategories:
		if value != "" {
			_ = m.client.SetCategories(strings.Fields(value))
			m.input.Reset()
		}
		return true, nil
	}

	return false, nil
}

func (m *Model) handleLobbyInput(value string) (bool, tea.Cmd) {
	m.input.Reset()

	switch value {
	case "1":
		_ = m.client.CreateRoom(nil, 0, 0)
	case "2":
		m.input.Placeholder = "输入 6 位邀请码"
		m.notice = "请输入好友发来的邀请码"
	case "3":
		_ = m.client.FindRandom()
	case "4":
		_ = m.client.GetStats()
	case "5":
		m.phase = PhaseProfile
		m.input.Placeholder = "性别 年龄，如: male 25"
	case "6":
		m.phase = PhaseCategories
		m.input.Placeholder = "类别列表，如: acquaintance flirt"
	case "":
		// ignore
	default:
		// 直接输入邀请码也可以加入房间
		if len(value) == 6 {
			_ = m.client.JoinRoom(strings.ToUpper(value))
		} else {
			m.errMsg = "无效的选项"
			return true, clearErrorAfter(2 * time.Second)
		}
	}
	return true, nil
}

func (m *Model) handleProfileInput(value string) (bool, tea.Cmd) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		m.errMsg = "格式: 性别 年龄，如 male 25"
		return true, clearErrorAfter(2 * time.Second)
	}

	age, err := strconv.Atoi(fields[1])
	if err != nil {
		m.errMsg = "年龄必须是数字"
		return true, clearErrorAfter(2 * time.Second)
	}

	_ = m.client.SetProfile(strings.ToLower(fields[0]), age)
	m.input.Reset()
	return true, nil
}

// enterLobby 返回大厅并重置对局状态
func (m *Model) enterLobby() {
	m.phase = PhaseLobby
	m.errMsg = ""
	m.notice = ""
	m.gameID = 0
	m.inviteCode = ""
	m.players = nil
	m.isHost = false
	m.task = nil
	m.stats = nil
	m.input.Reset()
	m.input.Placeholder = "输入选项 (1-6) 或邀请码"
	m.input.Focus()
}

func (m *Model) myTurn() bool {
	return m.currentPlayer == m.userID
}

func (m *Model) playerName(id int64) string {
	for _, p := range m.players {
		if p.ID == id {
			return p.Name
		}
	}
	return strconv.FormatInt(id, 10)
}
