package taxonomy

import (
	"fmt"

	"github.com/erraggy/hsrgen/route"
	"github.com/erraggy/hsrgen/typemodel"
)

// VariantKind distinguishes the three kinds of error variant.
type VariantKind int

const (
	// Declared is a variant for a declared 4xx status.
	Declared VariantKind = iota
	// Default carries the default response payload and its runtime status.
	Default
	// Unexpected wraps an implementation or transport error.
	Unexpected
)

func (k VariantKind) String() string {
	switch k {
	case Declared:
		return "declared"
	case Default:
		return "default"
	case Unexpected:
		return "unexpected"
	}
	return fmt.Sprintf("VariantKind(%d)", int(k))
}

// Variant is one member of an error union.
type Variant struct {
	Kind VariantKind
	// Name is "E<status>", "Default" or "Unexpected".
	Name string
	// Status is the literal code of a Declared variant.
	Status int
	// Payload is the body type, if the variant carries one.
	Payload     *typemodel.Typ
	Description string
}

// StatusSource says where a variant's HTTP status comes from.
type StatusSource int

const (
	// Static statuses are the literal declared code.
	Static StatusSource = iota
	// Dynamic statuses are carried by the value at runtime.
	Dynamic
	// Delegated statuses are looked up on the wrapped error, falling back to
	// DefaultStatus.
	Delegated
)

// DefaultStatus is used when a dynamic or delegated status is unknown.
const DefaultStatus = 500

// Status describes how a variant maps to an HTTP status.
type Status struct {
	Source StatusSource
	// Code is the literal code for Static, and the fallback otherwise.
	Code int
}

// ErrorType is the error union of one route.
type ErrorType struct {
	OperationID string
	Variants    []Variant
}

// Build returns the error union of r: one Declared variant per declared error
// status in declared order, a Default variant when the route has a default
// response, and a final Unexpected variant.
func Build(r *route.Route) *ErrorType {
	et := &ErrorType{OperationID: r.OperationID}
	for _, resp := range r.Errors {
		et.Variants = append(et.Variants, Variant{
			Kind:        Declared,
			Name:        fmt.Sprintf("E%d", resp.Status),
			Status:      resp.Status,
			Payload:     resp.Type,
			Description: resp.Description,
		})
	}
	if r.Default != nil {
		et.Variants = append(et.Variants, Variant{Kind: Default, Name: "Default", Payload: r.Default})
	}
	et.Variants = append(et.Variants, Variant{Kind: Unexpected, Name: "Unexpected"})
	return et
}

// StatusOf returns the status mapping of v. Every variant has one.
func (e *ErrorType) StatusOf(v Variant) Status {
	switch v.Kind {
	case Declared:
		return Status{Source: Static, Code: v.Status}
	case Default:
		return Status{Source: Dynamic, Code: DefaultStatus}
	default:
		return Status{Source: Delegated, Code: DefaultStatus}
	}
}

// Declared returns the declared-status variants.
func (e *ErrorType) Declared() []Variant {
	var out []Variant
	for _, v := range e.Variants {
		if v.Kind == Declared {
			out = append(out, v)
		}
	}
	return out
}

// Default returns the default variant, if the route declares one.
func (e *ErrorType) Default() (Variant, bool) {
	for _, v := range e.Variants {
		if v.Kind == Default {
			return v, true
		}
	}
	return Variant{}, false
}

// Unexpected returns the generic variant.
func (e *ErrorType) Unexpected() Variant {
	return e.Variants[len(e.Variants)-1]
}

// ForStatus returns the variant a response with the given error status maps
// to: the declared variant for that code, else the default variant, else the
// unexpected variant.
func (e *ErrorType) ForStatus(code int) Variant {
	for _, v := range e.Variants {
		if v.Kind == Declared && v.Status == code {
			return v
		}
	}
	if v, ok := e.Default(); ok {
		return v
	}
	return e.Unexpected()
}

// BuildAll returns the error unions of every route in set, in route order.
func BuildAll(set *route.Set) []*ErrorType {
	out := make([]*ErrorType, len(set.Routes))
	for i, r := range set.Routes {
		out[i] = Build(r)
	}
	return out
}
