package route

import (
	"fmt"
	"net/http"

	"github.com/erraggy/hsrgen/oaserrors"
)

// MuxPattern returns the method-qualified ServeMux pattern of r with
// positional wildcard names.
func (r *Route) MuxPattern() string {
	return r.Method + " " + r.Template.Pattern(func(i int) string { return fmt.Sprintf("p%d", i) })
}

// checkPatterns registers every route on a scratch ServeMux, which rejects
// two patterns that match some common path when neither is more specific.
// Wildcard names do not take part in that check.
func checkPatterns(routes []*Route) error {
	mux := http.NewServeMux()
	for i, r := range routes {
		if err := register(mux, r.MuxPattern()); err == nil {
			continue
		}
		for _, prev := range routes[:i] {
			if !conflicts(prev, r) {
				continue
			}
			return &oaserrors.RouteError{
				Method: r.Method,
				Path:   r.Path(),
				Kind:   oaserrors.RouteConflict,
				Message: fmt.Sprintf("overlaps %s %s (operation %s) and neither pattern is more specific",
					prev.Method, prev.Path(), prev.OperationID),
			}
		}
		return &oaserrors.RouteError{
			Method:  r.Method,
			Path:    r.Path(),
			Kind:    oaserrors.RouteConflict,
			Message: "pattern cannot be registered with the other routes",
		}
	}
	return nil
}

func conflicts(a, b *Route) bool {
	mux := http.NewServeMux()
	if err := register(mux, a.MuxPattern()); err != nil {
		return false
	}
	return register(mux, b.MuxPattern()) != nil
}

// register adds pattern to mux, turning the registration panic into an error.
func register(mux *http.ServeMux, pattern string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	mux.HandleFunc(pattern, func(http.ResponseWriter, *http.Request) {})
	return nil
}
