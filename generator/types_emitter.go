package generator

import (
	"fmt"

	"github.com/erraggy/hsrgen/internal/artifact"
	"github.com/erraggy/hsrgen/internal/naming"
	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/typemodel"
)

// typesFile declares one Go type per named schema, sorted by Go name.
// Records become structs and everything else becomes an alias.
func (e *emitter) typesFile() (*artifact.File, error) {
	f := e.newFile("types.go")
	table := e.model.set.Table
	for _, name := range e.model.sortedTypeNames() {
		h, _ := table.Lookup(name)
		entry := table.Entry(h)
		goName := e.model.types[name]
		doc := docFor(goName, entry.Description)

		if entry.Type.Kind() != typemodel.KindRecord {
			f.Add(&artifact.Alias{Doc: doc, Name: goName, Type: e.model.goType(entry.Type)})
			continue
		}
		s, err := e.structDecl(name, goName, entry.Type)
		if err != nil {
			return nil, err
		}
		s.Doc = doc
		f.Add(s)
	}
	return f, nil
}

func (e *emitter) structDecl(schema, goName string, rec typemodel.Typ) (*artifact.Struct, error) {
	s := &artifact.Struct{Name: goName}
	seen := make(map[string]string)
	for _, field := range rec.Fields() {
		fieldName := naming.FieldName(field.Name)
		if prev, dup := seen[fieldName]; dup {
			return nil, &oaserrors.CodegenError{
				Artifact: "types.go",
				Message:  fmt.Sprintf("schema %q: properties %q and %q both map to field %s", schema, prev, field.Name, fieldName),
			}
		}
		seen[fieldName] = field.Name
		if !isValidJSONName(field.Name) {
			return nil, &oaserrors.CodegenError{
				Artifact: "types.go",
				Message:  fmt.Sprintf("schema %q: property name %q cannot be used as a JSON struct tag", schema, field.Name),
			}
		}
		tag := field.Name
		if field.Type.IsOptional() {
			tag += ",omitempty"
		}
		s.Fields = append(s.Fields, artifact.Field{
			Doc:  docFor(fieldName, cleanDescription(field.Description)),
			Name: fieldName,
			Type: e.model.goType(field.Type),
			Tag:  fmt.Sprintf(`json:"%s"`, tag),
		})
	}
	return s, nil
}
