package ports

import "context"

// EmbedderPort is the external face-embedding extractor. The engine sends
// it the best liveness frame and receives the probe embedding the matcher
// scores. Model internals stay behind this port.
type EmbedderPort interface {
	Embed(ctx context.Context, frame []byte) ([]float64, error)
}
