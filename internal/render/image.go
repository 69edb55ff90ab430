package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// renderImage pipes the DOT description through the external layout
// process. Failure of that process is the only operation that leaves this
// one; it is caught here and degraded to the DOT text fallback with a
// non-fatal RenderError, never propagated as a crash.
func (r *Renderer) renderImage(ctx context.Context, g *graph.Graph, selected map[string]bool, hl highlights, imagePath string) (*Result, error) {
	dot := renderDOT(g, selected, hl)
	if imagePath == "" {
		imagePath = "workgraph.png"
	}

	if _, err := exec.LookPath(r.dotBinary); err != nil {
		return fallback(dot, &models.RenderError{
			Format: string(FormatImage),
			Err:    fmt.Errorf("%s not found in PATH: %w", r.dotBinary, err),
		}), nil
	}

	cmd := exec.CommandContext(ctx, r.dotBinary, "-Tpng", "-o", imagePath)
	cmd.Stdin = strings.NewReader(dot)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fallback(dot, &models.RenderError{
			Format: string(FormatImage),
			Err:    fmt.Errorf("%s failed: %v: %s", r.dotBinary, err, strings.TrimSpace(stderr.String())),
		}), nil
	}

	return &Result{Format: FormatImage, ImagePath: imagePath}, nil
}

func fallback(dot string, renderErr *models.RenderError) *Result {
	return &Result{
		Format:    FormatDOT,
		Text:      dot,
		Message:   "image rendering unavailable, falling back to DOT output",
		RenderErr: renderErr,
	}
}
