// Package report renders backtest results for humans. It sits outside the
// core: everything it prints is derived from a completed Result.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/rustyeddy/backsim/backtest"
)

// PrintSummary writes the run summary block.
func PrintSummary(w io.Writer, name string, r backtest.Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Strategy:       %s\n", name)
	if !r.Start.IsZero() {
		fmt.Fprintf(w, "Start:          %s\n", r.Start.Format(time.RFC3339))
		fmt.Fprintf(w, "End:            %s\n", r.End.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Bars:           %d\n", len(r.Equity))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial Capital: %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final Equity:    %.2f\n", r.FinalEquity)
	fmt.Fprintf(w, "Total Return:    %.2f%%\n", r.TotalReturn*100)
	fmt.Fprintf(w, "Max Drawdown:    %.2f%%\n", r.MaxDrawdown*100)
	fmt.Fprintf(w, "Volatility:      %.4f\n", r.Volatility)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trades")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total Trades:    %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Wins:            %d\n", r.Wins)
	fmt.Fprintf(w, "Losses:          %d\n", r.Losses)
	fmt.Fprintf(w, "Win Rate:        %.1f%%\n", r.WinRate*100)
	fmt.Fprintf(w, "Total PnL:       %.2f\n", r.TotalPnL)
	if r.Wins > 0 {
		fmt.Fprintf(w, "Average Win:     %.2f\n", r.AvgWin)
	}
	if r.Losses > 0 {
		fmt.Fprintf(w, "Average Loss:    %.2f\n", r.AvgLoss)
	}
	fmt.Fprintln(w)
}

// PrintTrades writes the full trade log as a table.
func PrintTrades(w io.Writer, r backtest.Result) {
	if len(r.Trades) == 0 {
		fmt.Fprintln(w, "No trades.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", "Side", "Price", "Size", "Cash Delta", "PnL"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, t := range r.Trades {
		pnl := ""
		if p := t.PnL(); p != 0 {
			pnl = fmt.Sprintf("%.2f", p)
		}
		table.Append([]string{
			t.Time.Format("2006-01-02 15:04"),
			t.Side.String(),
			fmt.Sprintf("%.4f", t.Price),
			fmt.Sprintf("%g", t.Size),
			fmt.Sprintf("%.2f", t.Cash),
			pnl,
		})
	}

	table.Render()
}
