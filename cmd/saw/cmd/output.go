package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/corey/saw/internal/domain/recipe"
	"github.com/corey/saw/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// rejection is one document that failed to load.
type rejection struct {
	DocID string
	Err   error
}

// rejections collects RecipeRejected calls for display after a reload.
type rejections struct {
	list []rejection
}

func (r *rejections) RecipeRejected(docID string, err error) {
	r.list = append(r.list, rejection{DocID: docID, Err: err})
}

func (r *rejections) ReloadCompleted(ports.ReloadReport) {}

// formatReload renders a reload summary with one line per document.
//
//	⚡ 3 documents │ 2 accepted │ 1 rejected │ 2ms
//	  ✓ demo:saw_recipes/logs.json   #demo:logs → tag_all #demo:planks ×4
//	  ✗ demo:saw_recipes/bad.json    unknown predicate type at predicate.type ("item")
func formatReload(report ports.ReloadReport, recipes []recipe.Recipe, rejected []rejection) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d documents%s │ %s%d accepted%s │ ",
		colorBold, report.Documents, colorReset, colorGreen, report.Accepted, colorReset))
	if report.Rejected > 0 {
		sb.WriteString(fmt.Sprintf("%s%d rejected%s", colorRed, report.Rejected, colorReset))
	} else {
		sb.WriteString("0 rejected")
	}
	if report.Noops > 0 {
		sb.WriteString(fmt.Sprintf(" │ %s%d noop emitters%s", colorYellow, report.Noops, colorReset))
	}
	sb.WriteString(fmt.Sprintf(" │ %s\n", report.Duration.Round(time.Microsecond)))

	width := 0
	for _, r := range recipes {
		width = max(width, len(r.Source))
	}
	for _, r := range rejected {
		width = max(width, len(r.DocID))
	}

	for _, r := range recipes {
		sb.WriteString(fmt.Sprintf("  %s✓%s %s%-*s%s  %s → %s\n",
			colorGreen, colorReset, colorCyan, width, r.Source, colorReset,
			describePredicate(r.Predicate), describeTransform(r.Transform)))
	}
	for _, r := range rejected {
		sb.WriteString(fmt.Sprintf("  %s✗%s %s%-*s%s  %s%v%s\n",
			colorRed, colorReset, colorCyan, width, r.DocID, colorReset,
			colorGray, r.Err, colorReset))
	}
	return sb.String()
}

// describePredicate renders a predicate compactly: "#tag" for tag matches,
// "block[k=v,...]" for exact matches.
func describePredicate(p recipe.Predicate) string {
	switch p := p.(type) {
	case recipe.TagMatch:
		return "#" + p.Tag.String()
	case recipe.ExactMatch:
		return p.Block.String() + "[" + formatState(p.State) + "]"
	default:
		return "?"
	}
}

// describeTransform renders the emitters in declared order.
func describeTransform(t recipe.Transform) string {
	if len(t) == 0 {
		return colorGray + "(nothing)" + colorReset
	}
	parts := make([]string, 0, len(t))
	for _, e := range t {
		parts = append(parts, describeEmitter(e))
	}
	return strings.Join(parts, ", ")
}

func describeEmitter(e recipe.Emitter) string {
	switch e := e.(type) {
	case recipe.TagAll:
		return fmt.Sprintf("tag_all #%s ×%d", e.Tag, e.Amount)
	case recipe.TagRandom:
		return fmt.Sprintf("tag_random #%s ×%d", e.Tag, e.Amount)
	case recipe.Item:
		return fmt.Sprintf("%s ×%d", e.ID, e.Amount)
	case recipe.Noop:
		return fmt.Sprintf("%snoop (%s)%s", colorYellow, e.Reason, colorReset)
	default:
		return "?"
	}
}

// formatState renders state properties sorted by name.
func formatState(state map[string]string) string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + state[k]
	}
	return strings.Join(parts, ",")
}

// formatItems renders one evaluation result.
//
//	  4 × minecraft:oak_planks
func formatItems(items []recipe.ItemCount) string {
	if len(items) == 0 {
		return fmt.Sprintf("  %s(no items)%s\n", colorGray, colorReset)
	}
	var sb strings.Builder
	for _, ic := range items {
		sb.WriteString(fmt.Sprintf("  %s%3d%s × %s\n", colorBold, ic.Count, colorReset, ic.Item))
	}
	return sb.String()
}
