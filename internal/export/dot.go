package export

import (
	"fmt"
	"strings"

	"github.com/graphgames/localint"
)

// RenderDOT produces a Graphviz DOT representation of an interaction
// network. When profile is non-nil it must have one action per agent;
// nodes are then colored by their current action.
func RenderDOT(adj *localint.Adjacency, profile []int) (string, error) {
	if profile != nil && len(profile) != adj.N() {
		return "", fmt.Errorf("profile has length %d, want %d", len(profile), adj.N())
	}

	var b strings.Builder
	b.WriteString("digraph localint {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for i := 0; i < adj.N(); i++ {
		if profile != nil {
			b.WriteString(fmt.Sprintf("  %d [label=\"%d\", fillcolor=%q, tooltip=\"action=%d\"];\n",
				i, i, actionColor(profile[i]), profile[i]))
		} else {
			b.WriteString(fmt.Sprintf("  %d [label=\"%d\", fillcolor=\"lightgray\"];\n", i, i))
		}
	}
	b.WriteString("\n")

	adj.Visit(func(i, j int, w float64) {
		if w == 1 {
			b.WriteString(fmt.Sprintf("  %d -> %d;\n", i, j))
		} else {
			b.WriteString(fmt.Sprintf("  %d -> %d [label=\"%.2g\", weight=\"%.1f\"];\n", i, j, w, w))
		}
	})

	b.WriteString("}\n")
	return b.String(), nil
}

// actionColors gives the first few actions stable, distinguishable colors.
var actionColors = []string{
	"steelblue",
	"tomato",
	"mediumseagreen",
	"goldenrod",
	"orchid",
	"lightskyblue",
}

func actionColor(action int) string {
	if action < 0 || action >= len(actionColors) {
		return "lightgray"
	}
	return actionColors[action]
}
