package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/stats"
)

const (
	boardWeekly = iota
	boardMonthly
	boardStreak
)

var boardNames = []string{"Weekly", "Monthly", "Streaks"}

type leader struct {
	Rank       int
	Name       string
	University string
	Hours      float64
	Streak     int
	Sessions   int
	IsUser     bool
}

var weeklyPeers = []leader{
	{Name: "Carlos Mendoza", University: "UNI", Hours: 28.5, Streak: 12},
	{Name: "Ana Quispe", University: "UNMSM", Hours: 26.3, Streak: 10},
	{Name: "Luis Torres", University: "PUCP", Hours: 17.8, Streak: 8},
	{Name: "María Santos", University: "UNI", Hours: 16.2, Streak: 7},
	{Name: "Pedro Ramírez", University: "UNMSM", Hours: 15.5, Streak: 6},
	{Name: "Sofía López", University: "UPC", Hours: 14.8, Streak: 9},
	{Name: "Diego Flores", University: "PUCP", Hours: 14.2, Streak: 5},
}

var monthlyPeers = []leader{
	{Name: "Ana Quispe", University: "UNMSM", Hours: 112.5, Sessions: 58},
	{Name: "Carlos Mendoza", University: "UNI", Hours: 108.3, Sessions: 54},
	{Name: "Luis Torres", University: "PUCP", Hours: 95.8, Sessions: 48},
	{Name: "María Santos", University: "UNI", Hours: 76.2, Sessions: 42},
}

var streakPeers = []leader{
	{Name: "Carlos Mendoza", University: "UNI", Streak: 45, Hours: 28.5},
	{Name: "Diego Flores", University: "PUCP", Streak: 38, Hours: 14.2},
	{Name: "Ana Quispe", University: "UNMSM", Streak: 32, Hours: 26.3},
	{Name: "Luis Torres", University: "PUCP", Streak: 28, Hours: 17.8},
}

// userLeader builds the local user's entry from real statistics.
func userLeader(st model.Stats, university string) leader {
	hours, _ := strconv.ParseFloat(st.TotalHours, 64)
	return leader{
		Name:       "You",
		University: university,
		Hours:      hours,
		Streak:     st.Streak,
		Sessions:   st.TotalSessions,
		IsUser:     true,
	}
}

// rankBoard inserts user among peers, orders the board and assigns ranks from 1.
// The user ranks below peers with an equal score.
func rankBoard(board int, peers []leader, user leader) []leader {
	out := make([]leader, 0, len(peers)+1)
	out = append(out, peers...)
	out = append(out, user)
	score := func(l leader) float64 { return l.Hours }
	if board == boardStreak {
		score = func(l leader) float64 { return float64(l.Streak) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) > score(out[j])
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func peersFor(board int) []leader {
	switch board {
	case boardMonthly:
		return monthlyPeers
	case boardStreak:
		return streakPeers
	default:
		return weeklyPeers
	}
}

func rankIcon(rank int) string {
	switch rank {
	case 1:
		return "👑"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "#" + strconv.Itoa(rank)
	}
}

type leaderboardScreen struct {
	env
	board  int
	user   leader
	errMsg string
}

func newLeaderboardScreen(e env) *leaderboardScreen {
	return &leaderboardScreen{env: e}
}

func (s *leaderboardScreen) Init() tea.Cmd {
	st, err := stats.Load(s.ctx, s.store, s.now())
	if err != nil {
		s.errMsg = err.Error()
	}
	profile, _, err := s.store.GetProfile(s.ctx)
	if err != nil {
		s.errMsg = err.Error()
	}
	s.user = userLeader(st, greetingFor(profile).University)
	return nil
}

func (s *leaderboardScreen) capturing() bool { return false }

func (s *leaderboardScreen) bindings() []key.Binding {
	return []key.Binding{binding("←/→", "board")}
}

func (s *leaderboardScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	n := len(boardNames)
	switch km.String() {
	case "left", "h":
		s.board = (s.board - 1 + n) % n
	case "right", "l":
		s.board = (s.board + 1) % n
	}
	return nil
}

func (s *leaderboardScreen) View(width, height int) string {
	tabs := make([]string, 0, len(boardNames))
	for i, name := range boardNames {
		if i == s.board {
			tabs = append(tabs, activeNavStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveNavStyle.Render(name))
		}
	}
	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	if s.errMsg != "" {
		b.WriteString(errorStyle.Render("Failed to load your stats: " + s.errMsg))
		b.WriteString("\n\n")
	}

	for _, l := range rankBoard(s.board, peersFor(s.board), s.user) {
		var value string
		switch s.board {
		case boardMonthly:
			value = fmt.Sprintf("%6.1f h  %3d sessions", l.Hours, l.Sessions)
		case boardStreak:
			value = fmt.Sprintf("%3d days  %5.1f h", l.Streak, l.Hours)
		default:
			value = fmt.Sprintf("%5.1f h  🔥 %d", l.Hours, l.Streak)
		}
		icon := lipgloss.NewStyle().Width(5).Render(rankIcon(l.Rank))
		line := icon + fmt.Sprintf("%-18s %-8s %s", truncateLine(l.Name, 18), l.University, value)
		if l.IsUser {
			b.WriteString(accentStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
