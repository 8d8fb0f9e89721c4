package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sqltint/sqltint/pkg/token"
)

// YAMLSource serves catalog metadata from a YAML fixture file. It backs
// offline use and tests, and doubles as the documentation of the catalog
// shape:
//
//	databases:
//	  - name: Sales
//	    default_schema: dbo
//	    schemas:
//	      - name: dbo
//	        tables:
//	          - name: Employees
//	            columns: [{name: Id, type: int}, {name: Name, type: nvarchar}]
type YAMLSource struct {
	databases []yamlDatabase
}

type yamlColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlObject struct {
	Name    string       `yaml:"name"`
	Columns []yamlColumn `yaml:"columns"`
}

type yamlSchema struct {
	Name       string       `yaml:"name"`
	Tables     []yamlObject `yaml:"tables"`
	Views      []yamlObject `yaml:"views"`
	Procedures []yamlObject `yaml:"procedures"`
	Functions  []yamlObject `yaml:"functions"`
	Synonyms   []yamlObject `yaml:"synonyms"`
}

type yamlDatabase struct {
	Name          string       `yaml:"name"`
	DefaultSchema string       `yaml:"default_schema"`
	Schemaless    bool         `yaml:"schemaless"`
	Schemas       []yamlSchema `yaml:"schemas"`
}

type yamlRoot struct {
	Databases []yamlDatabase `yaml:"databases"`
}

// OpenYAML reads a catalog fixture file.
func OpenYAML(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses catalog fixture bytes.
func ParseYAML(data []byte) (*YAMLSource, error) {
	var root yamlRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return &YAMLSource{databases: root.Databases}, nil
}

// Databases implements Source.
func (y *YAMLSource) Databases(context.Context) ([]DatabaseInfo, error) {
	infos := make([]DatabaseInfo, 0, len(y.databases))
	for _, db := range y.databases {
		def := db.DefaultSchema
		if def == "" {
			def = "dbo"
		}
		infos = append(infos, DatabaseInfo{
			Name:          db.Name,
			UsesSchemas:   !db.Schemaless,
			DefaultSchema: def,
		})
	}
	return infos, nil
}

// Schemas implements Source.
func (y *YAMLSource) Schemas(_ context.Context, db string) ([]string, error) {
	d, ok := y.database(db)
	if !ok {
		return nil, fmt.Errorf("unknown database %q", db)
	}
	names := make([]string, 0, len(d.Schemas))
	for _, s := range d.Schemas {
		names = append(names, s.Name)
	}
	return names, nil
}

// Objects implements Source.
func (y *YAMLSource) Objects(_ context.Context, db, schema string) ([]*Object, error) {
	s, ok := y.schema(db, schema)
	if !ok {
		return nil, fmt.Errorf("unknown schema %q.%q", db, schema)
	}
	var objs []*Object
	add := func(list []yamlObject, kind ObjectKind) {
		for _, o := range list {
			objs = append(objs, &Object{Name: o.Name, Schema: s.Name, Kind: kind})
		}
	}
	add(s.Tables, KindTable)
	add(s.Views, KindView)
	add(s.Procedures, KindProcedure)
	add(s.Functions, KindFunction)
	add(s.Synonyms, KindSynonym)
	return objs, nil
}

// Columns implements Source.
func (y *YAMLSource) Columns(_ context.Context, db, schema, object string) ([]Column, error) {
	s, ok := y.schema(db, schema)
	if !ok {
		return nil, fmt.Errorf("unknown schema %q.%q", db, schema)
	}
	folded := token.Fold(object)
	for _, list := range [][]yamlObject{s.Tables, s.Views, s.Procedures, s.Functions, s.Synonyms} {
		for _, o := range list {
			if token.Fold(o.Name) != folded {
				continue
			}
			cols := make([]Column, 0, len(o.Columns))
			for _, c := range o.Columns {
				cols = append(cols, Column{Name: c.Name, DataType: c.Type})
			}
			return cols, nil
		}
	}
	return nil, fmt.Errorf("unknown object %q.%q.%q", db, schema, object)
}

func (y *YAMLSource) database(db string) (*yamlDatabase, bool) {
	folded := token.Fold(db)
	for i := range y.databases {
		if token.Fold(y.databases[i].Name) == folded {
			return &y.databases[i], true
		}
	}
	return nil, false
}

func (y *YAMLSource) schema(db, schema string) (*yamlSchema, bool) {
	d, ok := y.database(db)
	if !ok {
		return nil, false
	}
	folded := token.Fold(schema)
	for i := range d.Schemas {
		if token.Fold(d.Schemas[i].Name) == folded {
			return &d.Schemas[i], true
		}
	}
	return nil, false
}
