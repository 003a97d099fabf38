// Package view holds the TUI screens. Each screen is a tea.Model that
// reports back to the root model with BackMsg when the user leaves it.
package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

const dbTimeout = 5 * time.Second

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

// Session is the signed-in user plus the account scope every screen reads.
// The scope lives here and nowhere else; switching it on the menu swaps the
// data under every screen at once.
type Session struct {
	UserID      uuid.UUID
	AccountType transaction.AccountType
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SignedInMsg is emitted by the login screen on success.
type SignedInMsg struct {
	UserID uuid.UUID
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
