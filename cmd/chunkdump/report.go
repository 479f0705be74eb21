package main

import (
	"fmt"
	"io"

	"gamecraft/internal/meshing"
	"gamecraft/internal/world"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	coordColor  = color.New(color.FgYellow)
	emptyColor  = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed)
)

// writeReport prints one line per chunk and a totals line. results must be
// in the same order as chunks.
func writeReport(w io.Writer, chunks []*world.Chunk, results []meshing.MeshResult) error {
	if len(chunks) != len(results) {
		return fmt.Errorf("report: %d chunks but %d mesh results", len(chunks), len(results))
	}

	headerColor.Fprintf(w, "%-14s %6s %6s %8s %8s\n", "chunk", "solid", "quads", "verts", "indices")

	var solid, quads, verts, indices int
	for i, c := range chunks {
		r := results[i]
		coordColor.Fprintf(w, "%-14s", c.Position)
		if r.Error != nil {
			errorColor.Fprintf(w, " error: %v\n", r.Error)
			continue
		}
		line := fmt.Sprintf(" %6d %6d %8d %8d\n", c.SolidCount(), r.Mesh.QuadCount(), r.Mesh.VertexCount(), len(r.Mesh.Indices))
		if r.Mesh.IsEmpty() {
			emptyColor.Fprint(w, line)
		} else {
			fmt.Fprint(w, line)
		}
		solid += c.SolidCount()
		quads += r.Mesh.QuadCount()
		verts += r.Mesh.VertexCount()
		indices += len(r.Mesh.Indices)
	}

	headerColor.Fprintf(w, "%-14s %6d %6d %8d %8d\n", "total", solid, quads, verts, indices)
	return nil
}
