// Package workers runs periodic maintenance next to the HTTP server. Today
// that is the reconciliation of user book lists with the authors recorded on
// books.
package workers

import "context"

// Worker blocks in Run until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
