// Package route holds the portal's static routing table and a matcher for it.
package route

import (
	"strings"

	"github.com/memberhub/portal/internal/domain/access"
)

// Layout selects the page shell a route renders inside.
type Layout string

const (
	LayoutPublic Layout = "public"
	LayoutAuth   Layout = "auth"
	LayoutMember Layout = "member"
	LayoutAdmin  Layout = "admin"
)

// Descriptor describes one page of the portal.
// Pattern segments are literals or "{name}" parameters.
type Descriptor struct {
	Name    string
	Pattern string
	Layout  Layout
	Guard   access.GuardKind
}

// Params holds values captured by "{name}" segments.
type Params map[string]string

// Table is an ordered, immutable set of descriptors.
type Table struct {
	routes []compiled
}

type compiled struct {
	desc     Descriptor
	segments []segment
}

type segment struct {
	literal string
	param   string
}

func (s segment) isParam() bool { return s.param != "" }

// NewTable compiles descriptors into a Table.
// It panics on malformed or duplicate patterns: tables are built once at start-up.
func NewTable(descs ...Descriptor) *Table {
	t := &Table{routes: make([]compiled, 0, len(descs))}
	seen := make(map[string]string, len(descs))
	for _, d := range descs {
		segs := compile(d.Pattern)
		shape := shapeOf(segs)
		if prev, dup := seen[shape]; dup {
			panic("route: " + d.Pattern + " conflicts with " + prev)
		}
		seen[shape] = d.Pattern
		t.routes = append(t.routes, compiled{desc: d, segments: segs})
	}
	return t
}

func compile(pattern string) []segment {
	if !strings.HasPrefix(pattern, "/") {
		panic("route: pattern must start with /: " + pattern)
	}
	parts := splitPath(pattern)
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			name := strings.TrimSuffix(strings.TrimPrefix(p, "{"), "}")
			if name == "" {
				panic("route: empty parameter name in " + pattern)
			}
			segs = append(segs, segment{param: name})
			continue
		}
		segs = append(segs, segment{literal: p})
	}
	return segs
}

// shapeOf erases parameter names so "/a/{x}" and "/a/{y}" collide.
func shapeOf(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		if s.isParam() {
			b.WriteString("{}")
			continue
		}
		b.WriteString(s.literal)
	}
	return b.String()
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Descriptors returns the table's descriptors in declaration order.
func (t *Table) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.desc
	}
	return out
}

// Lookup returns the descriptor registered under name.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	for _, r := range t.routes {
		if r.desc.Name == name {
			return r.desc, true
		}
	}
	return Descriptor{}, false
}

// Match resolves path to exactly one descriptor. Among candidates of equal length,
// a literal segment beats a parameter at the first position where they differ.
// Paths with a trailing slash other than "/" itself never match.
func (t *Table) Match(path string) (Descriptor, Params, bool) {
	if !strings.HasPrefix(path, "/") || (len(path) > 1 && strings.HasSuffix(path, "/")) {
		return Descriptor{}, nil, false
	}
	parts := splitPath(path)
	var (
		best   *compiled
		params Params
	)
	for i := range t.routes {
		r := &t.routes[i]
		p, ok := r.match(parts)
		if !ok {
			continue
		}
		if best == nil || moreSpecific(r.segments, best.segments) {
			best, params = r, p
		}
	}
	if best == nil {
		return Descriptor{}, nil, false
	}
	return best.desc, params, true
}

func (c *compiled) match(parts []string) (Params, bool) {
	if len(parts) != len(c.segments) {
		return nil, false
	}
	var params Params
	for i, s := range c.segments {
		if s.isParam() {
			if parts[i] == "" {
				return nil, false
			}
			if params == nil {
				params = Params{}
			}
			params[s.param] = parts[i]
			continue
		}
		if parts[i] != s.literal {
			return nil, false
		}
	}
	return params, true
}

func moreSpecific(a, b []segment) bool {
	for i := range a {
		if a[i].isParam() != b[i].isParam() {
			return !a[i].isParam()
		}
	}
	return false
}
