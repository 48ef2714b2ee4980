package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, userID string) error {
	m := newBoardModel(ctx, svc, userID)
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
