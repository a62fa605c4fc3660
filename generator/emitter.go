package generator

import (
	"path"

	"github.com/erraggy/hsrgen/internal/artifact"
)

// emitter turns a model into artifact files. Each emit method only reads the
// model, so the files can be built in any order.
type emitter struct {
	gen     *Generator
	model   *model
	source  string
	runtime string
}

// emit builds every enabled file in a fixed order and checks that no two
// declarations in the package share a name.
func (e *emitter) emit() ([]*artifact.File, error) {
	var files []*artifact.File
	if e.gen.typesEnabled() {
		f, err := e.typesFile()
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if e.gen.GenerateServer || e.gen.GenerateClient {
		files = append(files, e.errorsFile())
	}
	if e.gen.GenerateServer {
		files = append(files, e.serviceFile(), e.serverFile())
	}
	if e.gen.GenerateClient {
		files = append(files, e.clientFile())
	}

	decls := make(map[string]string)
	for _, f := range files {
		for _, name := range f.Names() {
			if err := checkUnique(decls, name, f.Name); err != nil {
				return nil, err
			}
		}
		for _, d := range f.Decls {
			if u, ok := d.(*artifact.Union); ok {
				for _, v := range u.Variants {
					if err := checkUnique(decls, v.Name, f.Name); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return files, nil
}

func (e *emitter) newFile(name string) *artifact.File {
	return &artifact.File{
		Name:    name,
		Package: e.gen.packageName(),
		Header: []string{
			"Code generated by hsrgen. DO NOT EDIT.",
			"Source: " + e.source,
		},
	}
}

// addRuntime imports the hsr runtime package, naming the import when the
// path does not end in "hsr".
func (e *emitter) addRuntime(f *artifact.File) {
	for _, imp := range f.Imports {
		if imp.Path == e.runtime {
			return
		}
	}
	imp := artifact.Import{Path: e.runtime}
	if path.Base(e.runtime) != "hsr" {
		imp.Name = "hsr"
	}
	f.Imports = append(f.Imports, imp)
}
