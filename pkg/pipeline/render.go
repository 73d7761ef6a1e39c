package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/render/gridtext"
	"github.com/matzehuels/gridlayout/pkg/render/nodelink"
)

// RenderFromLayout produces one artifact per requested format.
// Options must already be validated (see Options.ValidateForRender).
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		if _, ok := artifacts[format]; ok {
			continue
		}
		if format == FormatSVG || format == FormatPNG || format == FormatDOT {
			if dot == "" {
				dot = nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed, ShowGrid: opts.ShowGrid})
			}
		}
		data, err := renderFormat(ctx, l, dot, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l graph.Layout, dot, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatDOT:
		return []byte(dot), nil
	case FormatText:
		return []byte(gridtext.Render(l, gridtext.Options{IDs: opts.IDs})), nil
	case FormatJSON:
		return graph.MarshalLayout(l)
	default:
		return nil, ValidateFormat(format)
	}
}
