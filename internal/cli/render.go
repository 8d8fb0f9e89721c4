package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sqltint/sqltint/pkg/semantic"
)

// styles maps highlight groups to terminal styles.
var styles = map[semantic.Group]lipgloss.Style{
	semantic.GroupDatabase:   lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	semantic.GroupSchema:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	semantic.GroupTable:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	semantic.GroupView:       lipgloss.NewStyle().Foreground(lipgloss.Color("38")),
	semantic.GroupProcedure:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	semantic.GroupFunction:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	semantic.GroupSynonym:    lipgloss.NewStyle().Foreground(lipgloss.Color("43")),
	semantic.GroupColumn:     lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
	semantic.GroupAlias:      lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	semantic.GroupCte:        lipgloss.NewStyle().Foreground(lipgloss.Color("80")),
	semantic.GroupTempTable:  lipgloss.NewStyle().Foreground(lipgloss.Color("44")),
	semantic.GroupKeyword:    lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
	semantic.GroupDatatype:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	semantic.GroupParameter:  lipgloss.NewStyle().Foreground(lipgloss.Color("222")),
	semantic.GroupString:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	semantic.GroupNumber:     lipgloss.NewStyle().Foreground(lipgloss.Color("216")),
	semantic.GroupOperator:   lipgloss.NewStyle().Foreground(lipgloss.Color("251")),
	semantic.GroupComment:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	semantic.GroupUnresolved: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Underline(true),
}

// render writes the classified buffer back out, token by token, with each
// token's highlight style applied. Layout is reconstructed from token
// positions, so inter-token whitespace comes out as spaces.
func render(w io.Writer, classified []semantic.ClassifiedToken, colored bool) {
	line, col := 1, 1
	for _, ct := range classified {
		pos := ct.Token.Pos
		if pos.Line > line {
			io.WriteString(w, strings.Repeat("\n", pos.Line-line))
			line, col = pos.Line, 1
		}
		if pos.Col > col {
			io.WriteString(w, strings.Repeat(" ", pos.Col-col))
			col = pos.Col
		}

		text := ct.Token.Text
		if colored && ct.Group != "" {
			if style, ok := styles[ct.Group]; ok {
				text = style.Render(text)
			}
		}
		io.WriteString(w, text)

		if n := strings.Count(ct.Token.Text, "\n"); n > 0 {
			line += n
			col = len(ct.Token.Text) - strings.LastIndexByte(ct.Token.Text, '\n')
		} else {
			col += len(ct.Token.Text)
		}
	}
	io.WriteString(w, "\n")
}
