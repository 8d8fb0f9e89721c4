package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqltint/sqltint/pkg/chunk"
	"github.com/sqltint/sqltint/pkg/lexer"
	"github.com/sqltint/sqltint/pkg/semantic"
)

func newClassifyCommand() *cobra.Command {
	var listMode bool

	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify a SQL file and print it with semantic highlighting",
		Long: `Classify reads SQL from a file (or stdin when the argument is "-" or
omitted), resolves every identifier against the configured connection, and
prints the buffer with one color per semantic class. With --list it prints
a table of identifier classifications instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args)
			if err != nil {
				return err
			}

			cfg := getConfig(cmd.Context())
			sess, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer sess.Close()
			if err := sess.prime(cmd.Context()); err != nil {
				return err
			}

			classified := classifyBuffer(src, sess, cfg.Highlight.ToSemantic())
			if listMode {
				printClassifications(cmd.OutOrStdout(), classified)
				return nil
			}
			render(cmd.OutOrStdout(), classified, !cfg.NoColor)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&listMode, "list", "l", false, "print a classification table instead of colored SQL")
	return cmd
}

// classifyBuffer runs the full pipeline on one buffer.
func classifyBuffer(src string, sess *session, cfg semantic.Config) []semantic.ClassifiedToken {
	toks := lexer.Tokenize(src)
	chunks := chunk.Parse(toks)
	return semantic.Classify(toks, chunks, sess.Conn, cfg)
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// printClassifications writes one row per identifier-like token.
func printClassifications(w io.Writer, classified []semantic.ClassifiedToken) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Line", "Col", "Text", "Type", "Group"})
	for _, ct := range classified {
		if !ct.Type.IsObject() && ct.Type != semantic.Unresolved {
			continue
		}
		if !ct.Token.Kind.IsIdentLike() {
			continue
		}
		t.AppendRow(table.Row{
			ct.Token.Pos.Line, ct.Token.Pos.Col,
			ct.Token.Text, ct.Type.String(), string(ct.Group),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
