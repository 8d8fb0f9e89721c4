package cli

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"github.com/sqltint/sqltint/pkg/catalog"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the schema catalog of the active connection",
	}
	cmd.AddCommand(newCatalogShowCommand())
	return cmd
}

func newCatalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the catalog tree: databases, schemas, objects, columns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			sess, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer sess.Close()
			if sess.Conn == nil {
				return fmt.Errorf("no connection configured; set connection in sqltint.yaml or pass --connection")
			}
			if err := sess.prime(cmd.Context()); err != nil {
				return err
			}

			l := list.NewWriter()
			l.SetOutputMirror(cmd.OutOrStdout())
			l.SetStyle(list.StyleConnectedRounded)

			opts := catalog.Options{SkipLoad: true}
			for _, db := range sorted(sess.Catalog.DatabaseNames()) {
				l.AppendItem(db)
				l.Indent()
				for _, schema := range sess.Catalog.GetSchemas(db, opts) {
					l.AppendItem(schema.Name)
					l.Indent()
					appendObjects(l, sess.Catalog, db, schema.Name)
					l.UnIndent()
				}
				l.UnIndent()
			}
			l.Render()
			return nil
		},
	}
}

func appendObjects(l list.Writer, cat *catalog.Catalog, db, schema string) {
	opts := catalog.Options{Schema: schema, SkipLoad: true}
	groups := []struct {
		objs []*catalog.Object
	}{
		{cat.GetTables(db, opts)},
		{cat.GetViews(db, opts)},
		{cat.GetProcedures(db, opts)},
		{cat.GetFunctions(db, opts)},
		{cat.GetSynonyms(db, opts)},
	}
	for _, g := range groups {
		sort.Slice(g.objs, func(i, j int) bool { return g.objs[i].Name < g.objs[j].Name })
		for _, obj := range g.objs {
			l.AppendItem(fmt.Sprintf("%s (%s)", obj.Name, obj.Kind))
			if len(obj.Columns) > 0 {
				l.Indent()
				for _, col := range obj.Columns {
					l.AppendItem(fmt.Sprintf("%s %s", col.Name, col.DataType))
				}
				l.UnIndent()
			}
		}
	}
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
