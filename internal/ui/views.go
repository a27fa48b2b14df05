package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	case PhaseAuth:
		content = m.authView()
	case PhaseLobby:
		content = m.lobbyView()
	case PhaseRoom:
		content = m.roomView()
	case PhaseMatching:
		content = m.matchingView()
	case PhasePlaying:
		content = m.playingView()
	case PhaseGameOver:
		content = m.gameOverView()
	case PhaseStats:
		content = m.statsView()
	case PhaseProfile:
		content = m.profileView()
	case PhaseCategories:
		content = m.categoriesView()
	}

	return DocStyle.Render(content)
}

func (m *Model) statusLine() string {
	switch {
	case m.errMsg != "":
		return ErrorStyle.Render(m.errMsg)
	case m.notice != "":
		return m.notice
	default:
		return ""
	}
}

func (m *Model) connectingView() string {
	msg := "正在连接服务器..."
	if m.errMsg != "" {
		msg = ErrorStyle.Render(m.errMsg)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) authView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle(DiceIcon + " 真心话大冒险"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(HintStyle.Render("回车确认 · ESC 退出"))
	if s := m.statusLine(); s != "" {
		sb.WriteString("\n\n" + s)
	}
	return sb.String()
}

func (m *Model) lobbyView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle(DiceIcon + " 真心话大冒险 - 大厅"))
	sb.WriteString("\n\n")

	premium := ""
	if m.isPremium {
		premium = " ⭐"
	}
	sb.WriteString(fmt.Sprintf("你好，%s%s\n\n", m.name, premium))

	sb.WriteString("  1. 创建好友房间\n")
	sb.WriteString("  2. 凭邀请码加入\n")
	sb.WriteString("  3. 随机匹配\n")
	sb.WriteString("  4. 我的统计\n")
	sb.WriteString("  5. 设置资料\n")
	sb.WriteString("  6. 设置任务类别\n")

	sb.WriteString(PromptStyle.Render(m.input.View()))
	sb.WriteString("\n\n")
	sb.WriteString(HintStyle.Render("Ctrl+C 退出"))
	if s := m.statusLine(); s != "" {
		sb.WriteString("\n\n" + s)
	}
	return sb.String()
}

func (m *Model) roomView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle(DiceIcon + " 好友房间"))
	sb.WriteString("\n\n")
	sb.WriteString("邀请码: " + CodeStyle.Render(m.inviteCode))
	sb.WriteString("\n\n玩家:\n")

	for _, p := range m.players {
		line := "  " + p.Name
		if p.IsHost {
			line += " " + CrownIcon
		}
		if p.ID == m.userID {
			line += " (你)"
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n")
	if m.isHost {
		sb.WriteString(HintStyle.Render("按 S 开始游戏 · ESC 解散房间"))
	} else {
		sb.WriteString(HintStyle.Render("等待房主开始游戏... · ESC 离开"))
	}
	if s := m.statusLine(); s != "" {
		sb.WriteString("\n\n" + s)
	}
	return sb.String()
}

func (m *Model) matchingView() string {
	elapsed := time.Since(m.matchingStart).Seconds()
	msg := fmt.Sprintf("🔍 正在匹配玩家...\n\n已等待: %.0f 秒\n\n按 ESC 取消", elapsed)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) playingView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle(DiceIcon + " 游戏进行中"))
	sb.WriteString(fmt.Sprintf("  第 %d/%d 回合\n\n", m.round+1, m.maxRounds))

	if m.myTurn() {
		sb.WriteString(TurnStyle.Render("轮到你了！"))
	} else {
		sb.WriteString(fmt.Sprintf("轮到 %s", m.playerName(m.currentPlayer)))
	}
	sb.WriteString("\n\n")

	if m.task != nil {
		icon := TruthIcon
		label := "真心话"
		if m.task.Kind == "dare" {
			icon = DareIcon
			label = "大冒险"
		}
		sb.WriteString(TaskBoxStyle.Render(fmt.Sprintf("%s %s\n\n%s", icon, label, m.task.Text)))
		sb.WriteString("\n\n")
		if m.myTurn() {
			sb.WriteString(HintStyle.Render("完成后按回车进入下一回合"))
		}
	} else if m.myTurn() {
		sb.WriteString(HintStyle.Render("按 T 抽真心话 · 按 D 抽大冒险"))
	} else {
		sb.WriteString(HintStyle.Render("等待对方选择..."))
	}

	sb.WriteString("\n\n")
	sb.WriteString(HintStyle.Render("ESC 结束游戏"))
	if s := m.statusLine(); s != "" {
		sb.WriteString("\n\n" + s)
	}
	return sb.String()
}

func (m *Model) gameOverView() string {
	msg := fmt.Sprintf("🏁 游戏结束！\n\n共进行了 %d 个回合\n\n按任意键返回大厅", m.finishedRounds)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) statsView() string {
	if m.stats == nil {
		return "加载中..."
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle("📊 我的统计"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("昵称: %s\n", m.stats.Name))
	sb.WriteString(fmt.Sprintf("游戏场数: %d\n", m.stats.GamesPlayed))
	sb.WriteString(fmt.Sprintf("完成任务: %d\n", m.stats.TasksDone))
	sb.WriteString(fmt.Sprintf("今日匹配: %d 次\n", m.stats.SearchesToday))
	if len(m.stats.Categories) > 0 {
		sb.WriteString(fmt.Sprintf("任务类别: %s\n", strings.Join(m.stats.Categories, ", ")))
	}
	if m.stats.IsPremium {
		sb.WriteString("⭐ 高级会员\n")
	}
	sb.WriteString("\n")
	sb.WriteString(HintStyle.Render("按任意键返回大厅"))
	return BoxStyle.Render(sb.String())
}

func (m *Model) profileView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle("⚙️ 设置资料"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(HintStyle.Render("格式: 性别 年龄（male/female，16-99）· ESC 返回"))
	if s := m.statusLine(); s != "" {
		sb.WriteString("\n\n" + s)
	}
	return sb.String()
}

func (m *Model) categoriesView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle("⚙️ 设置任务类别"))
	sb.WriteString("\n\n")
	sb.WriteString("可选类别: acquaintance, flirt, sexy, extreme, funny\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(HintStyle.Render("空格分隔多个类别 · ESC 返回"))
	if s := m.statusLine(); s != "" {
		sb.WriteString("\n\n" + s)
	}
	return sb.String()
}
