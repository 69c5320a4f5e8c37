package processor

import "context"

// Processor summarizes every video referenced by a list file.
type Processor interface {
	Process(ctx context.Context, listPath string) error
}
