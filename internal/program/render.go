package program

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/domain/errors"
)

// Artifact is a rendered program: a name and its source in the
// expression backend. Artifact length is source length; the driver picks
// the shortest successful artifact.
type Artifact struct {
	Name   string
	Source string
}

// Len returns the artifact's source length.
func (a Artifact) Len() int { return len(a.Source) }

// Render converts a completed program graph into a source artifact.
//
// The artifact starts with declaration lines: the program signature and
// every active operation as comments (sorted by name), then one let
// binding per active constant (sorted by name). The body is a
// straight-line single-assignment form: operation arguments that are
// themselves operations (or conditionals) are hoisted into intermediate
// let bindings x0, x1, ... named in discovery order and emitted in
// reverse order of visit, before the final returned expression. A
// conditional renders as a ternary expression.
//
// Rendering a graph with an empty blank fails with a RenderError.
func Render(g *Graph, name string, inputs []domain.Input) (Artifact, error) {
	body, err := renderBody(g)
	if err != nil {
		return Artifact{}, err
	}

	var lines []string
	lines = append(lines, signatureComment(g, name, inputs))
	lines = append(lines, activeOperationComments(g)...)
	lines = append(lines, activeConstantBindings(g)...)
	lines = append(lines, body...)

	return Artifact{Name: name, Source: strings.Join(lines, "\n") + "\n"}, nil
}

func signatureComment(g *Graph, name string, inputs []domain.Input) string {
	params := make([]string, 0, len(inputs))
	for _, in := range inputs {
		params = append(params, fmt.Sprintf("%s: %s", in.Name(), in.Type()))
	}
	return fmt.Sprintf("// func %s(%s) -> %s", name, strings.Join(params, ", "), g.OutputType())
}

// activeOperationComments declares every operation appearing in the
// graph, de-duplicated and sorted lexicographically by name.
func activeOperationComments(g *Graph) []string {
	active := make(map[string]domain.Operation)
	for _, entry := range g.Config() {
		if entry.Content == nil || entry.Content.Kind() != domain.KindOperation {
			continue
		}
		op := entry.Content.(domain.Operation)
		active[op.Name()] = op
	}

	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]string, 0, len(names))
	for _, name := range names {
		decls = append(decls, operationComment(active[name]))
	}
	return decls
}

func operationComment(op domain.Operation) string {
	params := make([]string, 0, op.Arity())
	for _, p := range op.Params() {
		params = append(params, fmt.Sprintf("%s: %s", p.Name, p.Type))
	}
	decl := fmt.Sprintf("// %s(%s) -> %s", op.Name(), strings.Join(params, ", "), op.Type())
	if src := op.Source(); src != "" {
		decl += " = " + src
	}
	return decl
}

// activeConstantBindings declares every constant appearing in the graph,
// de-duplicated and sorted lexicographically by name.
func activeConstantBindings(g *Graph) []string {
	active := make(map[string]domain.Constant)
	for _, entry := range g.Config() {
		if entry.Content == nil || entry.Content.Kind() != domain.KindConstant {
			continue
		}
		c := entry.Content.(domain.Constant)
		active[c.Name()] = c
	}

	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]string, 0, len(names))
	for _, name := range names {
		decls = append(decls, fmt.Sprintf("let %s = %s;", name, constantLiteral(active[name].Value())))
	}
	return decls
}

func constantLiteral(v any) string {
	switch value := v.(type) {
	case string:
		return strconv.Quote(value)
	case bool:
		return strconv.FormatBool(value)
	case float32:
		return strconv.FormatFloat(float64(value), 'g', -1, 64)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// pendingBinding is an intermediate variable discovered during body
// traversal, still awaiting its own expression.
type pendingBinding struct {
	name  string
	blank domain.Blank
}

func renderBody(g *Graph) ([]string, error) {
	count := 0
	rootExpr, pending, err := blankExpr(g, g.Root(), &count)
	if err != nil {
		return nil, err
	}

	lines := []string{rootExpr}
	for len(pending) > 0 {
		binding := pending[0]
		pending = pending[1:]

		bindingExpr, discovered, err := blankExpr(g, binding.blank, &count)
		if err != nil {
			return nil, err
		}
		pending = append(pending, discovered...)
		lines = append([]string{fmt.Sprintf("let %s = %s;", binding.name, bindingExpr)}, lines...)
	}
	return lines, nil
}

// blankExpr renders the expression for one filled blank. Sub-contents
// that are operations or conditionals are replaced by fresh intermediate
// names and reported back for later binding.
func blankExpr(g *Graph, b domain.Blank, count *int) (string, []pendingBinding, error) {
	content, ok := g.Content(b)
	if !ok {
		return "", nil, errors.NewRenderError(b.ID, "cannot render an empty blank")
	}

	var pending []pendingBinding
	ref := func(sub domain.Blank) (string, error) {
		subContent, ok := g.Content(sub)
		if !ok {
			return "", errors.NewRenderError(sub.ID, "cannot render an empty blank")
		}
		if domain.IsVariable(subContent) {
			return subContent.Name(), nil
		}
		name := fmt.Sprintf("x%d", *count)
		*count++
		pending = append(pending, pendingBinding{name: name, blank: sub})
		return name, nil
	}

	switch content.Kind() {
	case domain.KindInput, domain.KindConstant:
		return content.Name(), nil, nil

	case domain.KindOperation:
		args := make([]string, 0, len(g.SubBlanks(b)))
		for _, sub := range g.SubBlanks(b) {
			arg, err := ref(sub)
			if err != nil {
				return "", nil, err
			}
			args = append(args, arg)
		}
		return fmt.Sprintf("%s(%s)", content.Name(), strings.Join(args, ", ")), pending, nil

	case domain.KindIf:
		subs := g.SubBlanks(b)
		parts := make([]string, 0, 3)
		for _, sub := range subs {
			part, err := ref(sub)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, part)
		}
		return fmt.Sprintf("%s ? %s : %s", parts[0], parts[1], parts[2]), pending, nil

	default:
		return "", nil, errors.NewRenderError(b.ID, fmt.Sprintf("unsupported content kind %q", content.Kind()))
	}
}
