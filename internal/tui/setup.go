package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/polar-ai/taskpurge/internal/monday"
	"github.com/polar-ai/taskpurge/internal/settings"
)

// SetupStep tracks the current step in the settings wizard
type SetupStep int

const (
	SetupStepToken      SetupStep = iota // API token entry
	SetupStepValidating                  // Token check + board listing in flight
	SetupStepBoard                       // Board selection (or watch-all)
	SetupStepColumns                     // Column pickers (single-board only)
	SetupStepUser                        // Watched user from board subscribers
	SetupStepUserID                      // Manual watched-user id (watch-all)
	SetupStepGenKey                      // Optional generation credential
	SetupStepSaving                      // Persisting
	SetupStepDone                        // Finished
)

// column picker order within SetupStepColumns
var columnFields = []string{"優先度カラム", "期限カラム", "ステータスカラム", "担当者カラム"}

// Setup wizard messages
type tokenValidatedMsg struct {
	boards []monday.Board
	err    error
}

type columnsLoadedMsg struct {
	columns []monday.Column
	err     error
}

type usersLoadedMsg struct {
	users []monday.User
	err   error
}

type setupSavedMsg struct {
	cfg *settings.Settings
	err error
}

// SetupModel drives the settings wizard: token → board → columns →
// watched user → generation key → save.
type SetupModel struct {
	userID    string
	store     settings.Store
	newClient func(token string) *monday.Client

	step       SetupStep
	tokenInput textinput.Model
	userInput  textinput.Model
	genInput   textinput.Model

	client  *monday.Client
	boards  []monday.Board
	columns []monday.Column
	users   []monday.User

	boardIdx  int // 0 means watch-all
	columnIdx int // which of columnFields is being picked
	listIdx   int // cursor within the current list
	userIdx   int

	cfg     settings.Settings // accumulates choices
	errText string
}

// NewSetupModel creates the wizard, prefilled from existing settings
func NewSetupModel(userID string, store settings.Store, existing *settings.Settings, newClient func(string) *monday.Client) SetupModel {
	token := textinput.New()
	token.Placeholder = "monday.com API token"
	token.Prompt = "Token: "
	token.PromptStyle = InputPromptStyle
	token.EchoMode = textinput.EchoPassword
	token.CharLimit = 300
	token.Width = 50
	token.Focus()

	user := textinput.New()
	user.Placeholder = "監視する担当者のユーザーID"
	user.Prompt = "User ID: "
	user.PromptStyle = InputPromptStyle
	user.Width = 30

	gen := textinput.New()
	gen.Placeholder = "空欄でテンプレート読み上げのみ"
	gen.Prompt = "Gen API Key: "
	gen.PromptStyle = InputPromptStyle
	gen.EchoMode = textinput.EchoPassword
	gen.Width = 50

	m := SetupModel{
		userID:     userID,
		store:      store,
		newClient:  newClient,
		step:       SetupStepToken,
		tokenInput: token,
		userInput:  user,
		genInput:   gen,
	}
	if existing != nil {
		m.cfg = *existing
		m.tokenInput.SetValue(existing.AccessToken)
		m.userInput.SetValue(existing.WatchedUserID)
		m.genInput.SetValue(existing.GenerationAPIKey)
	}
	return m
}

func (m SetupModel) validateTokenCmd(token string) tea.Cmd {
	client := m.newClient(token)
	return func() tea.Msg {
		ctx := context.Background()
		if !client.ValidateToken(ctx) {
			return tokenValidatedMsg{err: fmt.Errorf("APIトークンが無効です")}
		}
		boards, err := client.ListBoards(ctx)
		return tokenValidatedMsg{boards: boards, err: err}
	}
}

func (m SetupModel) loadColumnsCmd(boardID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		columns, err := client.BoardColumns(context.Background(), boardID)
		return columnsLoadedMsg{columns: columns, err: err}
	}
}

func (m SetupModel) loadUsersCmd(boardID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		users, err := client.BoardSubscribers(context.Background(), boardID)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m SetupModel) saveCmd() tea.Cmd {
	cfg := m.cfg
	store := m.store
	userID := m.userID
	return func() tea.Msg {
		if err := cfg.Validate(); err != nil {
			return setupSavedMsg{err: err}
		}
		if err := store.Save(userID, &cfg); err != nil {
			return setupSavedMsg{err: err}
		}
		return setupSavedMsg{cfg: &cfg}
	}
}

// Update handles wizard input. It returns the updated model, a command,
// and the saved settings once the wizard completes.
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd, *settings.Settings) {
	switch msg := msg.(type) {
	case tokenValidatedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.step = SetupStepToken
			return m, nil, nil
		}
		m.boards = msg.boards
		m.errText = ""
		m.step = SetupStepBoard
		m.boardIdx = 0
		return m, nil, nil

	case columnsLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.step = SetupStepBoard
			return m, nil, nil
		}
		m.columns = msg.columns
		m.step = SetupStepColumns
		m.columnIdx = 0
		m.listIdx = 0
		return m, nil, nil

	case usersLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.step = SetupStepBoard
			return m, nil, nil
		}
		m.users = msg.users
		m.step = SetupStepUser
		m.userIdx = 0
		return m, nil, nil

	case setupSavedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.step = SetupStepGenKey
			return m, nil, nil
		}
		m.step = SetupStepDone
		return m, nil, msg.cfg

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m SetupModel) updateInputs(msg tea.Msg) (SetupModel, tea.Cmd, *settings.Settings) {
	var cmd tea.Cmd
	switch m.step {
	case SetupStepToken:
		m.tokenInput, cmd = m.tokenInput.Update(msg)
	case SetupStepUserID:
		m.userInput, cmd = m.userInput.Update(msg)
	case SetupStepGenKey:
		m.genInput, cmd = m.genInput.Update(msg)
	}
	return m, cmd, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (SetupModel, tea.Cmd, *settings.Settings) {
	switch m.step {
	case SetupStepToken:
		if msg.Type == tea.KeyEnter {
			token := strings.TrimSpace(m.tokenInput.Value())
			if token == "" {
				m.errText = "APIトークンを入力してください"
				return m, nil, nil
			}
			m.cfg.AccessToken = token
			m.client = m.newClient(token)
			m.step = SetupStepValidating
			return m, m.validateTokenCmd(token), nil
		}
		var cmd tea.Cmd
		m.tokenInput, cmd = m.tokenInput.Update(msg)
		return m, cmd, nil

	case SetupStepBoard:
		// Entry 0 is watch-all; boards follow.
		total := len(m.boards) + 1
		switch msg.String() {
		case "up", "k":
			m.boardIdx = (m.boardIdx + total - 1) % total
		case "down", "j":
			m.boardIdx = (m.boardIdx + 1) % total
		case "enter":
			if m.boardIdx == 0 {
				m.cfg.BoardID = ""
				m.cfg.PriorityColumn, m.cfg.DateColumn = "", ""
				m.cfg.StatusColumn, m.cfg.PersonColumn = "", ""
				m.step = SetupStepUserID
				m.userInput.Focus()
				return m, textinput.Blink, nil
			}
			board := m.boards[m.boardIdx-1]
			m.cfg.BoardID = board.ID
			return m, m.loadColumnsCmd(board.ID), nil
		}
		return m, nil, nil

	case SetupStepColumns:
		choices := m.columnChoices()
		switch msg.String() {
		case "up", "k":
			if len(choices) > 0 {
				m.listIdx = (m.listIdx + len(choices) - 1) % len(choices)
			}
		case "down", "j":
			if len(choices) > 0 {
				m.listIdx = (m.listIdx + 1) % len(choices)
			}
		case "enter":
			if len(choices) == 0 {
				m.errText = "選択できるカラムがありません"
				return m, nil, nil
			}
			id := choices[m.listIdx].ID
			switch m.columnIdx {
			case 0:
				m.cfg.PriorityColumn = id
			case 1:
				m.cfg.DateColumn = id
			case 2:
				m.cfg.StatusColumn = id
			case 3:
				m.cfg.PersonColumn = id
			}
			m.columnIdx++
			m.listIdx = 0
			if m.columnIdx >= len(columnFields) {
				return m, m.loadUsersCmd(m.cfg.BoardID), nil
			}
		}
		return m, nil, nil

	case SetupStepUser:
		switch msg.String() {
		case "up", "k":
			if len(m.users) > 0 {
				m.userIdx = (m.userIdx + len(m.users) - 1) % len(m.users)
			}
		case "down", "j":
			if len(m.users) > 0 {
				m.userIdx = (m.userIdx + 1) % len(m.users)
			}
		case "enter":
			if len(m.users) == 0 {
				m.errText = "担当者が見つかりません"
				return m, nil, nil
			}
			m.cfg.WatchedUserID = m.users[m.userIdx].ID
			m.step = SetupStepGenKey
			m.genInput.Focus()
			return m, textinput.Blink, nil
		}
		return m, nil, nil

	case SetupStepUserID:
		if msg.Type == tea.KeyEnter {
			id := strings.TrimSpace(m.userInput.Value())
			if id == "" {
				m.errText = "ユーザーIDを入力してください"
				return m, nil, nil
			}
			m.cfg.WatchedUserID = id
			m.step = SetupStepGenKey
			m.genInput.Focus()
			return m, textinput.Blink, nil
		}
		var cmd tea.Cmd
		m.userInput, cmd = m.userInput.Update(msg)
		return m, cmd, nil

	case SetupStepGenKey:
		if msg.Type == tea.KeyEnter {
			m.cfg.GenerationAPIKey = strings.TrimSpace(m.genInput.Value())
			m.step = SetupStepSaving
			return m, m.saveCmd(), nil
		}
		var cmd tea.Cmd
		m.genInput, cmd = m.genInput.Update(msg)
		return m, cmd, nil
	}

	return m, nil, nil
}

// columnChoices filters the board's columns for the field being picked.
// The person field only offers people-typed columns, as the admin form did.
func (m SetupModel) columnChoices() []monday.Column {
	if m.columnIdx != 3 {
		return m.columns
	}
	var people []monday.Column
	for _, c := range m.columns {
		if c.Type == "people" || c.Type == "multiple-person" {
			people = append(people, c)
		}
	}
	return people
}

// View renders the wizard
func (m SetupModel) View() string {
	var b strings.Builder
	b.WriteString(SetupTitleStyle.Render("Task Purge セットアップ"))
	b.WriteString("\n\n")

	switch m.step {
	case SetupStepToken:
		b.WriteString(SetupLabelStyle.Render("monday.com のAPIトークンを入力してください"))
		b.WriteString("\n\n" + m.tokenInput.View())

	case SetupStepValidating:
		b.WriteString(DimStyle.Render("トークンを確認しています..."))

	case SetupStepBoard:
		b.WriteString(SetupLabelStyle.Render("監視するボードを選択してください"))
		b.WriteString("\n\n")
		b.WriteString(m.renderChoice(0, "全ボードを監視（固定カラムIDを使用）"))
		for i, board := range m.boards {
			b.WriteString(m.renderChoice(i+1, board.Name))
		}

	case SetupStepColumns:
		b.WriteString(SetupLabelStyle.Render(columnFields[m.columnIdx] + "を選択してください"))
		b.WriteString("\n\n")
		for i, col := range m.columnChoices() {
			label := fmt.Sprintf("%s (%s)", col.Title, col.Type)
			if i == m.listIdx {
				b.WriteString(SelectedItemStyle.Render("❯ "+label) + "\n")
			} else {
				b.WriteString(UnselectedItemStyle.Render("  "+label) + "\n")
			}
		}

	case SetupStepUser:
		b.WriteString(SetupLabelStyle.Render("監視する担当者を選択してください"))
		b.WriteString("\n\n")
		for i, u := range m.users {
			label := u.Name
			if u.Email != "" {
				label += " (" + u.Email + ")"
			}
			if i == m.userIdx {
				b.WriteString(SelectedItemStyle.Render("❯ "+label) + "\n")
			} else {
				b.WriteString(UnselectedItemStyle.Render("  "+label) + "\n")
			}
		}

	case SetupStepUserID:
		b.WriteString(SetupLabelStyle.Render("監視する担当者のユーザーIDを入力してください"))
		b.WriteString("\n\n" + m.userInput.View())

	case SetupStepGenKey:
		b.WriteString(SetupLabelStyle.Render("リマインド文生成APIキー（任意）"))
		b.WriteString("\n\n" + m.genInput.View())

	case SetupStepSaving:
		b.WriteString(DimStyle.Render("設定を保存しています..."))

	case SetupStepDone:
		b.WriteString(SuccessStyle.Render("設定を保存しました"))
	}

	if m.errText != "" {
		b.WriteString("\n\n" + ErrorStyle.Render(m.errText))
	}
	return b.String()
}

func (m SetupModel) renderChoice(idx int, label string) string {
	if idx == m.boardIdx {
		return SelectedItemStyle.Render("❯ "+label) + "\n"
	}
	return UnselectedItemStyle.Render("  "+label) + "\n"
}
