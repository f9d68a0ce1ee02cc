package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amirasaad/fxconv/pkg/money"
	service "github.com/amirasaad/fxconv/pkg/service/exchange"
	"github.com/fatih/color"
)

type printer struct {
	w      io.Writer
	amount *color.Color
	code   *color.Color
	faint  *color.Color
	ok     *color.Color
	warn   *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:      w,
		amount: color.New(color.Bold),
		code:   color.New(color.FgCyan, color.Bold),
		faint:  color.New(color.Faint),
		ok:     color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
	}
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func (p *printer) conversions(conversions []service.Conversion) {
	for _, c := range conversions {
		fmt.Fprintf(p.w, "%s %s is equal to %s %s %s\n",
			p.amount.Sprint(c.FormattedAmount()),
			p.code.Sprint(c.Source),
			p.amount.Sprint(c.FormattedResult()),
			p.code.Sprint(c.Target),
			p.faint.Sprintf("(rate: %s)", formatRate(c.Rate)),
		)
	}
}

func (p *printer) listing(l *service.Listing) {
	fmt.Fprintf(p.w, "Source currency: '%s'\n", p.code.Sprint(l.Source))
	for _, code := range l.Rates.Codes() {
		name := ""
		if cur, ok := l.Directory[code]; ok {
			name = cur.Name
		}
		fmt.Fprintf(p.w, "%s  %-32s %s\n", p.code.Sprintf("%-4s", code), name, formatRate(l.Rates[code]))
	}
	if len(l.Unresolved) > 0 {
		fmt.Fprintln(p.w, p.warn.Sprintf("No rate for: %s", money.Join(l.Unresolved)))
	}
}

func (p *printer) success(msg string) {
	fmt.Fprintln(p.w, p.ok.Sprint(msg))
}
