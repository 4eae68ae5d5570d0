// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package compiler

import (
	"slices"

	"go.previous-lang.org/previous/schema"
)

// Composition is strictly by value: the wire format has no reference
// indirection, so a cycle in the resource-reference graph would require
// infinite storage. Any cycle, including a self-reference, is rejected.

type depsGraph struct {
	// edges[i] lists the resources referenced by resource i's fields, in
	// field-declaration order. Parallel edges are harmless.
	edges [][]uint32
	names []string
}

func newDepsGraph(program *schema.Program) *depsGraph {
	g := &depsGraph{
		edges: make([][]uint32, len(program.Resources)),
		names: make([]string, len(program.Resources)),
	}
	for ix := range program.Resources {
		resource := &program.Resources[ix]
		g.names[ix] = resource.Name
		for _, field := range resource.Fields {
			g.collectRefs(uint32(ix), field.Type)
		}
	}
	return g
}

func (g *depsGraph) collectRefs(from uint32, fieldType *schema.Type) {
	switch fieldType.Kind {
	case schema.Type_RESOURCE:
		g.edges[from] = append(g.edges[from], fieldType.Resource)
	case schema.Type_LIST:
		g.collectRefs(from, fieldType.Elem)
	}
}

type nodeColor uint8

const (
	nodeUnvisited nodeColor = iota
	nodeOnPath
	nodeDone
)

// checkCycles runs a three-color depth-first search over the
// resource-reference graph. Roots are visited in declaration order and
// edges in field-declaration order, so the reported cycle is the first
// one this deterministic traversal reaches.
func checkCycles(program *schema.Program) error {
	g := newDepsGraph(program)
	colors := make([]nodeColor, len(g.edges))
	var path []uint32

	var visit func(node uint32) error
	visit = func(node uint32) error {
		colors[node] = nodeOnPath
		path = append(path, node)
		for _, next := range g.edges[node] {
			switch colors[next] {
			case nodeUnvisited:
				if err := visit(next); err != nil {
					return err
				}
			case nodeOnPath:
				return errDependencyCycle(g.cycleNames(path, next))
			}
		}
		path = path[:len(path)-1]
		colors[node] = nodeDone
		return nil
	}

	for node := range g.edges {
		if colors[node] == nodeUnvisited {
			if err := visit(uint32(node)); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleNames extracts the cycle from the active DFS path as an ordered
// name chain closed back on the repeated resource, e.g. A, B, C, A.
func (g *depsGraph) cycleNames(path []uint32, repeated uint32) []string {
	start := slices.Index(path, repeated)
	names := make([]string, 0, len(path)-start+1)
	for _, ix := range path[start:] {
		names = append(names, g.names[ix])
	}
	return append(names, g.names[repeated])
}
