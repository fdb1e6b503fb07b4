package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/core"
	"github.com/vovakirdan/moonrunner/internal/registry"
	"github.com/vovakirdan/moonrunner/internal/storage"
)

// stubGame ends its run after a fixed number of steps.
type stubGame struct {
	steps    int
	endAfter int
	score    int
	resets   int
	reporter core.ScoreReporter
	reported int
	applied  *config.RunnerConfig
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub Runner" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	st := g.State()
	if st.GameOver && g.steps == g.endAfter && g.reporter != nil {
		g.reported++
		g.reporter.ReportScore(g.score)
	}
	return core.StepResult{State: st}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	over := g.steps >= g.endAfter
	st := core.GameState{Started: true, GameOver: over, Elapsed: float64(g.steps) / 60}
	if over {
		st.Score = g.score
		st.Cause = "collision"
	}
	return st
}

func (g *stubGame) SetScoreReporter(r core.ScoreReporter) { g.reporter = r }

func (g *stubGame) Summary() core.RunRecord {
	return core.RunRecord{Score: g.score, Elapsed: float64(g.steps) / 60, Cause: "collision"}
}

func (g *stubGame) ApplyConfig(cfg config.RunnerConfig) { g.applied = &cfg }

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{endAfter: 3, score: 7} })
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w jumps", runeKey('w'), core.ActionJump, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey('l'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGreen)
	s.DrawTextColored(0, 1, "moon", core.ColorGray)

	lines := strings.Split(ansi.Strip(RenderScreen(s)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "abcd  " {
		t.Errorf("line 0 = %q, want %q", lines[0], "abcd  ")
	}
	if lines[1] != "moon  " {
		t.Errorf("line 1 = %q, want %q", lines[1], "moon  ")
	}
}

func TestMenuDifficultyCycle(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	if got := m.Difficulty(); got != config.DifficultyNormal {
		t.Fatalf("initial difficulty = %q, want normal", got)
	}

	steps := []struct {
		msg  tea.KeyMsg
		want config.DifficultyPreset
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, config.DifficultyHard},
		{tea.KeyMsg{Type: tea.KeyRight}, config.DifficultyFixed},
		{tea.KeyMsg{Type: tea.KeyRight}, config.DifficultyEasy},
		{tea.KeyMsg{Type: tea.KeyRight}, config.DifficultyNormal},
		{tea.KeyMsg{Type: tea.KeyLeft}, config.DifficultyEasy},
	}
	for i, s := range steps {
		next, _ := m.Update(s.msg)
		m = next.(MenuModel)
		if got := m.Difficulty(); got != s.want {
			t.Errorf("step %d: difficulty = %q, want %q", i, got, s.want)
		}
	}
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	picked := next.(MenuModel)
	if picked.Selected() == nil || picked.Selected().GameID == "" {
		t.Fatal("enter should select a game")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore("stub", 321); err != nil {
		t.Fatalf("save score: %v", err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	if !strings.Contains(ansi.Strip(m.View()), "321") {
		t.Error("menu should show the best score for stub")
	}
}

// tick drives a GameModel through n ticks.
func tick(m GameModel, n int) GameModel {
	for range n {
		next, _ := m.Update(TickMsg{})
		m = next.(GameModel)
	}
	return m
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	game := &stubGame{endAfter: 3, score: 42}
	m := NewGameModel(game, core.DefaultConfig(), GameOptions{Store: store})
	if game.reporter == nil {
		t.Fatal("score-aware game should get a reporter")
	}
	m.Init()

	m = tick(m, 10)
	if !m.State().GameOver {
		t.Fatal("run should be over")
	}
	if game.reported != 1 {
		t.Errorf("score reported %d times, want 1", game.reported)
	}

	best, err := store.HighScore("stub")
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if best != 42 {
		t.Errorf("high score = %d, want 42", best)
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Score != 42 || runs[0].Cause != "collision" {
		t.Errorf("run = %+v", runs[0].RunRecord)
	}
}

func TestGameModelRestart(t *testing.T) {
	game := &stubGame{endAfter: 2, score: 5}
	m := NewGameModel(game, core.DefaultConfig(), GameOptions{})
	m.Init()
	m = tick(m, 3)
	if !m.State().GameOver {
		t.Fatal("run should be over")
	}

	next, _ := m.Update(runeKey('r'))
	m = next.(GameModel)
	m = tick(m, 1)
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.State().GameOver {
		t.Error("restart should begin a new run")
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	tests := []struct {
		name   string
		inMenu bool
		ticks  int
		want   bool
	}{
		{"ignored while running", true, 0, false},
		{"after game over", true, 5, true},
		{"standalone game", false, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &stubGame{endAfter: 3, score: 1}
			m := NewGameModel(game, core.DefaultConfig(), GameOptions{InMenu: tt.inMenu})
			m.Init()
			m = tick(m, tt.ticks)

			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
			m = next.(GameModel)
			if m.BackToMenu() != tt.want {
				t.Errorf("BackToMenu() = %v, want %v", m.BackToMenu(), tt.want)
			}
		})
	}
}

func TestGameModelConfigReload(t *testing.T) {
	game := &stubGame{endAfter: 100}
	ch := make(chan config.RunnerConfig, 1)
	m := NewGameModel(game, core.DefaultConfig(), GameOptions{Reloads: ch})

	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.BaseSpeed = 123
	next, cmd := m.Update(ConfigReloadMsg{Config: cfg})
	m = next.(GameModel)

	if game.applied == nil || game.applied.Difficulty.BaseSpeed != 123 {
		t.Fatal("reloaded config should be handed to the game")
	}
	if cmd == nil {
		t.Error("model should keep listening for reloads")
	}
	if m.State().GameOver {
		t.Error("reload must not end the run")
	}
}

func TestWaitForReloadNilChannel(t *testing.T) {
	if waitForReload(nil) != nil {
		t.Error("nil channel should yield no command")
	}
}

func TestScoreboardToggle(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveRun("stub", core.RunRecord{Score: 9, Elapsed: 12.5, Cause: "fall"}); err != nil {
		t.Fatalf("save run: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if !strings.Contains(ansi.Strip(m.View()), "HIGH SCORES") {
		t.Error("scoreboard should open on high scores")
	}

	next, _ := m.Update(runeKey('v'))
	m = next.(ScoreboardModel)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "RECENT RUNS") {
		t.Error("v should switch to recent runs")
	}
	if !strings.Contains(view, "fall") {
		t.Error("recent runs should list the recorded run")
	}
}
