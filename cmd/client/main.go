package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xauspro/truth-or-dare/internal/logger"
	"github.com/xauspro/truth-or-dare/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1780", "服务器地址")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	userID, err := ui.LoadOrCreateUserID()
	if err != nil {
		log.Fatalf("读取用户标识失败: %v", err)
	}

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)

	model := ui.NewModel(serverURL, userID)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
