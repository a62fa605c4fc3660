package artifact

// Lookup returns the declaration named name, or nil.
func (f *File) Lookup(name string) Decl {
	for _, d := range f.Decls {
		if DeclName(d) == name {
			return d
		}
	}
	return nil
}

// DeclName returns the declared name of d. Methods are named "Recv.Name"
// with the receiver type stripped of its pointer.
func DeclName(d Decl) string {
	switch d := d.(type) {
	case *Struct:
		return d.Name
	case *Alias:
		return d.Name
	case *TypeDef:
		return d.Name
	case *Interface:
		return d.Name
	case *Union:
		return d.Name
	case *Var:
		return d.Name
	case *Func:
		if d.Recv == nil {
			return d.Name
		}
		recv := d.Recv.Type
		if len(recv) > 0 && recv[0] == '*' {
			recv = recv[1:]
		}
		return recv + "." + d.Name
	}
	return ""
}

// Names returns the names of every declaration in file order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Decls))
	for _, d := range f.Decls {
		names = append(names, DeclName(d))
	}
	return names
}

// Walk calls fn for every statement in body, depth first.
func Walk(body []Stmt, fn func(Stmt)) {
	for _, s := range body {
		fn(s)
		switch s := s.(type) {
		case *If:
			Walk(s.Then, fn)
			Walk(s.Else, fn)
		case *Switch:
			for _, c := range s.Cases {
				Walk(c.Body, fn)
			}
		case *For:
			Walk(s.Body, fn)
		case *ReturnFunc:
			Walk(s.Body, fn)
		}
	}
}
