/*
Package debugui implements the interactive terminal input loop for
cmd/fldic-debug: it prompts for a word, runs Session.Suggest and
Session.Spell, and prints the ranked candidate table. It is not a full
TUI frontend — only the minimal debug loop that prints a table.
*/
package debugui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/bastiangx/fldic/internal/logger"
	"github.com/bastiangx/fldic/pkg/session"
)

var log = logger.New("debugui")

var (
	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	metaStyle = lipgloss.NewStyle().Faint(true)
	flagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
)

// InputHandler drives the interactive suggest/spell loop against a Session.
type InputHandler struct {
	sess         *session.Session
	flags        session.RequestFlags
	requestCount int
}

// NewInputHandler returns a handler that issues every request with flags.
func NewInputHandler(sess *session.Session, flags session.RequestFlags) *InputHandler {
	return &InputHandler{sess: sess, flags: flags}
}

// Start begins the interactive loop: read a line, show its suggestions and
// spelling verdict, repeat until stdin closes.
func (h *InputHandler) Start() error {
	log.Print("fldic debug [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word and press Enter (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		h.handleInput(word)
	}
}

// handleInput runs one word through Suggest and Spell and prints the
// result table.
func (h *InputHandler) handleInput(word string) {
	h.requestCount++

	start := time.Now()
	candidates := h.sess.Suggest(word, nil, h.flags)
	elapsed := time.Since(start)

	verdict := h.sess.Spell(word, nil, nil, h.flags)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d suggestions for %q (%v):", len(candidates), word, elapsed)))
	if len(candidates) == 0 {
		fmt.Println(metaStyle.Render("  (none)"))
	}
	for i, c := range candidates {
		printRow(i+1, c)
	}
	fmt.Println(metaStyle.Render(verdictLine(verdict)))
}

// printRow renders one candidate, padding the word column to a fixed
// display width with go-runewidth so multi-byte/wide-rune words still line
// up under ASCII ones.
func printRow(rank int, c session.Candidate) {
	const wordColumn = 24
	padded := c.Text + strings.Repeat(" ", max(0, wordColumn-runewidth.StringWidth(c.Text)))
	marks := ""
	if c.IsEligibleForAutoCommit {
		marks += flagStyle.Render(" [auto]")
	}
	if c.IsEligibleForUserRemoval {
		marks += flagStyle.Render(" [user]")
	}
	fmt.Printf("  %2d. %s%s%s\n",
		rank,
		wordStyle.Render(padded),
		metaStyle.Render(fmt.Sprintf("ed=%d conf=%.2f", c.EditDistance, c.Confidence)),
		marks,
	)
}

func verdictLine(v session.Verdict) string {
	var tags []string
	for name, flag := range map[string]session.VerdictFlags{
		"IN_DICTIONARY":               session.VerdictInDictionary,
		"LOOKS_LIKE_TYPO":             session.VerdictLooksLikeTypo,
		"HAS_RECOMMENDED_SUGGESTIONS": session.VerdictHasRecommendedSuggestions,
	} {
		if v.Flags.Has(flag) {
			tags = append(tags, name)
		}
	}
	if len(tags) == 0 {
		return "verdict: (none)"
	}
	return "verdict: " + strings.Join(tags, "|")
}
