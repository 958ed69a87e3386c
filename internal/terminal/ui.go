// Package terminal renders sessions to a text terminal and reads the
// player's input.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/session"
)

const (
	MsgNoChoices     = "故事沒有提供任何選項，冒險只能在這裡畫下句點。"
	separator        = "--------------------------------------------------"
	loadingIndicator = "（地下城主正在構思故事……）"
)

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	narrative lipgloss.Style
	echo      lipgloss.Style
	choice    lipgloss.Style
	image     lipgloss.Style
	err       lipgloss.Style
	victory   lipgloss.Style
	gameOver  lipgloss.Style
	prompt    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		subtitle:  r.NewStyle().Foreground(lipgloss.Color("244")),
		narrative: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Width(72),
		echo:      r.NewStyle().Foreground(lipgloss.Color("39")).Italic(true),
		choice:    r.NewStyle().Foreground(lipgloss.Color("10")),
		image:     r.NewStyle().Foreground(lipgloss.Color("244")).Faint(true),
		err:       r.NewStyle().Foreground(lipgloss.Color("9")),
		victory:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Border(lipgloss.DoubleBorder()).Padding(0, 2),
		gameOver:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("160")).Border(lipgloss.NormalBorder()).Padding(0, 2),
		prompt:    r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// UI is a line-oriented terminal front end. Render is meant to be
// registered as a session observer; the Prompt methods block on input.
type UI struct {
	out     io.Writer
	scanner *bufio.Scanner
	styles  styles
	images  *ImageWriter

	rendered  int
	lastError string
	loading   bool
}

// Option configures a UI.
type Option func(*UI)

// WithImageWriter saves inline scene images to disk instead of summarizing them.
func WithImageWriter(w *ImageWriter) Option {
	return func(u *UI) { u.images = w }
}

// New creates a UI reading from in and writing to out. Colors are chosen
// for out, so a non-terminal writer gets plain text.
func New(in io.Reader, out io.Writer, opts ...Option) *UI {
	u := &UI{
		out:     out,
		scanner: bufio.NewScanner(in),
		styles:  newStyles(lipgloss.NewRenderer(out)),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Banner prints the title screen.
func (u *UI) Banner() {
	fmt.Fprintln(u.out, u.styles.title.Render("AI 地下城主"))
	fmt.Fprintln(u.out, u.styles.subtitle.Render("一場約十分鐘的文字冒險。輸入 quit 可隨時離開。"))
	fmt.Fprintln(u.out, separator)
}

// Render prints whatever changed since the previous snapshot: new transcript
// segments, the loading line, a new error and, once the adventure is over,
// the end screen. Choices are printed by PromptChoice.
func (u *UI) Render(s session.State) {
	if len(s.Transcript) < u.rendered {
		// new session
		u.rendered = 0
		if u.images != nil {
			u.images.NextGame()
		}
	}
	for i := u.rendered; i < len(s.Transcript); i++ {
		u.renderSegment(i, s.Transcript[i])
	}
	u.rendered = len(s.Transcript)

	if s.Loading && !u.loading {
		fmt.Fprintln(u.out, u.styles.subtitle.Render(loadingIndicator))
	}
	u.loading = s.Loading

	if s.LastError != "" && s.LastError != u.lastError {
		u.ShowError(s.LastError)
	}
	u.lastError = s.LastError

	if s.Phase.Terminal() && !s.Loading {
		u.renderEnding(s)
	}
}

func (u *UI) renderSegment(i int, seg game.Segment) {
	if seg.PlayerEcho {
		fmt.Fprintln(u.out, u.styles.echo.Render(seg.Line()))
		fmt.Fprintln(u.out)
		return
	}
	fmt.Fprintln(u.out, u.styles.narrative.Render(seg.Text))
	if seg.ImageURL != "" {
		fmt.Fprintln(u.out, u.styles.image.Render(u.describeImage(i, seg.ImageURL)))
	}
	fmt.Fprintln(u.out)
}

func (u *UI) describeImage(i int, ref string) string {
	if u.images != nil {
		path, err := u.images.Save(i, ref)
		if err == nil && path != "" {
			return "[插圖] " + path
		}
	}
	return "[插圖] " + SummarizeImage(ref)
}

func (u *UI) renderEnding(s session.State) {
	fmt.Fprintln(u.out, separator)
	if s.Phase == session.PhaseVictory {
		msg := "冒險勝利！"
		if s.VictoryType != game.VictoryNone {
			msg += " " + s.VictoryType.Label()
		}
		fmt.Fprintln(u.out, u.styles.victory.Render(msg))
	} else {
		fmt.Fprintln(u.out, u.styles.gameOver.Render("遊戲結束"))
	}
	if s.Character != nil {
		fmt.Fprintf(u.out, "%s（%s）共做出 %d 次選擇。\n", s.Character.Name, s.Character.Class.Label(), s.Transcript.Turns())
	}
}

// ShowError prints a one-line error message.
func (u *UI) ShowError(msg string) {
	fmt.Fprintln(u.out, u.styles.err.Render("! "+msg))
}

// ShowNotice prints an informational line.
func (u *UI) ShowNotice(msg string) {
	fmt.Fprintln(u.out, u.styles.subtitle.Render(msg))
}

// PromptCharacter asks for a name and a class. The name is returned as
// typed; the class prompt repeats until it parses.
func (u *UI) PromptCharacter() (string, game.Class, error) {
	fmt.Fprintln(u.out, u.styles.title.Render("建立你的角色"))
	name, err := u.ask("角色名稱")
	if err != nil {
		return "", "", err
	}

	for i, c := range game.Classes {
		fmt.Fprintln(u.out, u.styles.choice.Render(fmt.Sprintf("  %d. %s  %s", i+1, c.Label(), c.Description())))
	}
	for {
		answer, err := u.ask("選擇職業")
		if err != nil {
			return "", "", err
		}
		if class, ok := game.ParseClass(answer); ok {
			return name, class, nil
		}
		u.ShowError("請輸入 1 到 " + strconv.Itoa(len(game.Classes)) + " 或職業名稱。")
	}
}

// PromptChoice lists the choices and reads one, by number or by exact text.
func (u *UI) PromptChoice(choices []string) (string, error) {
	for i, c := range choices {
		fmt.Fprintln(u.out, u.styles.choice.Render(fmt.Sprintf("  %d. %s", i+1, c)))
	}
	for {
		answer, err := u.ask("你的選擇")
		if err != nil {
			return "", err
		}
		if choice, ok := pick(choices, answer); ok {
			return choice, nil
		}
		u.ShowError("請輸入 1 到 " + strconv.Itoa(len(choices)) + " 之間的數字。")
	}
}

// PromptPlayAgain asks whether to start over.
func (u *UI) PromptPlayAgain() (bool, error) {
	for {
		answer, err := u.ask("再玩一次？(y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes", "是", "好", "再玩一次":
			return true, nil
		case "n", "no", "否", "不":
			return false, nil
		}
	}
}

// ask prints a prompt and reads one trimmed line. Input ending or the word
// "quit" returns io.EOF.
func (u *UI) ask(label string) (string, error) {
	fmt.Fprint(u.out, u.styles.prompt.Render(label)+" > ")
	if !u.scanner.Scan() {
		if err := u.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(u.scanner.Text())
	if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
		return "", io.EOF
	}
	return line, nil
}

func pick(choices []string, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], true
		}
		return "", false
	}
	for _, c := range choices {
		if c == answer {
			return c, true
		}
	}
	return "", false
}
