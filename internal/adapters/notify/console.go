package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
	now   func() time.Time
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table, now: time.Now}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table, now: time.Now}
}

// NotifyDashboard imprime el dashboard en el modo configurado.
func (c *Console) NotifyDashboard(_ context.Context, d domain.Dashboard) error {
	if d.TotalDraws == 0 {
		fmt.Fprintf(c.out, "[%s] no draws available\n", c.now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(d)
	} else {
		c.printCompact(d)
	}
	return nil
}

// printCompact imprime las tres claves en una línea.
func (c *Console) printCompact(d domain.Dashboard) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d draws (%s)", c.now().Format("15:04:05"), d.TotalDraws, d.CacheInfo.Source)

	for i, k := range d.StrategicKeys.Keys() {
		fmt.Fprintf(&sb, " | %s %s", keyLabel(domain.KeyNames[i]), keyString(k))
	}
	if !d.AnalysisAvailable {
		sb.WriteString(" | default keys")
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime las claves y las tablas de estadísticas.
func (c *Console) printFull(d domain.Dashboard) {
	fmt.Fprintf(c.out, "\n[%s] %d draws — source:%s\n", d.LastUpdate, d.TotalDraws, d.CacheInfo.Source)
	if len(d.LastDrawNumbers) > 0 {
		fmt.Fprintf(c.out, "  Last draw: %s + %s\n", joinInts(d.LastDrawNumbers), joinInts(d.LastDrawStars))
	}
	if d.CacheInfo.LastScraping != nil {
		fmt.Fprintf(c.out, "  Last scraping: %s\n", *d.CacheInfo.LastScraping)
	}

	c.printKeys(d)
	c.printTopNumbers(d.TopNumbers)
	c.printOverdue(d.OverdueNumbers)
}

func (c *Console) printKeys(d domain.Dashboard) {
	fmt.Fprintln(c.out, "\n=== SUGGESTED KEYS ===")

	table := tablewriter.NewWriter(c.out)
	table.Header("Key", "Numbers", "Stars")
	for i, k := range d.StrategicKeys.Keys() {
		table.Append(domain.KeyNames[i], joinInts(k.Numbers), joinInts(k.Stars))
	}
	table.Render()

	if !d.AnalysisAvailable {
		fmt.Fprintln(c.out, "  ⚠ analysis unavailable, showing default keys")
	}
}

func (c *Console) printTopNumbers(top []domain.NumberFrequency) {
	if len(top) == 0 {
		return
	}
	fmt.Fprintln(c.out, "\n=== MOST FREQUENT ===")

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Number", "Freq")
	for i, n := range top {
		table.Append(strconv.Itoa(i+1), strconv.Itoa(n.Number), strconv.Itoa(n.Frequency))
	}
	table.Render()
}

func (c *Console) printOverdue(overdue []domain.OverdueNumber) {
	if len(overdue) == 0 {
		return
	}
	fmt.Fprintln(c.out, "\n=== MOST OVERDUE ===")

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Number", "Draws ago")
	for i, n := range overdue {
		table.Append(strconv.Itoa(i+1), strconv.Itoa(n.Number), strconv.Itoa(n.DrawsAgo))
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// PrintBacktest imprime el replay de las claves contra los sorteos reales.
func (c *Console) PrintBacktest(r domain.BacktestResult) {
	rounds := len(r.Rounds)
	if rounds == 0 {
		fmt.Fprintln(c.out, "\n  No backtest rounds available.")
		return
	}

	fmt.Fprintf(c.out, "\n=== BACKTEST — last %d draws ===\n", rounds)

	table := tablewriter.NewWriter(c.out)
	table.Header("Key", "Hits N", "Hits S", "Avg N", "Avg S", "Best", "Verdict")
	for _, s := range r.Scores {
		table.Append(
			s.Name,
			strconv.Itoa(s.NumberHits),
			strconv.Itoa(s.StarHits),
			fmt.Sprintf("%.3f", s.AvgNumbers(rounds)),
			fmt.Sprintf("%.3f", s.AvgStars(rounds)),
			fmt.Sprintf("%d+%d", s.BestNumbers, s.BestStars),
			s.Verdict(rounds),
		)
	}
	table.Render()

	fmt.Fprintf(c.out, "  Random key: %.3f numbers and %.3f stars per draw\n",
		domain.RandomNumberHits, domain.RandomStarHits)

	best := bestRound(r.Rounds)
	fmt.Fprintf(c.out, "  Best round: draw #%d %s\n\n", best.Index+1, best.Line)
}

// --- helpers ---

// bestRound devuelve la ronda con más aciertos de números sumando las tres claves.
func bestRound(rounds []domain.BacktestRound) domain.BacktestRound {
	best, bestHits := rounds[0], -1
	for _, r := range rounds {
		hits := 0
		for _, h := range r.Hits {
			hits += h.Numbers
		}
		if hits > bestHits {
			best, bestHits = r, hits
		}
	}
	return best
}

func keyLabel(name string) string {
	if name == "" {
		return "?"
	}
	return strings.ToUpper(name[:1]) + ":"
}

func keyString(k domain.SuggestedKey) string {
	return joinInts(k.Numbers) + " + " + joinInts(k.Stars)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
