// Package searcher implements the request/reply Searcher actor of
// spec.md §4.3: it receives bounded search requests, scans a batch of
// the Line Store, and replies with the matched indices and the range it
// scanned.
//
// Grounded on peco's filter/parallel.go for the "test each line, collect
// matching indices" shape; the bounded-batch and single-threaded reply
// ordering are new structure from spec.md §4.3/§5, since peco's filters
// always scan to completion rather than a fixed-size batch.
package searcher

import (
	"github.com/linepick/linepick/internal/queue"
	"github.com/linepick/linepick/linestore"
	"github.com/linepick/linepick/query"
)

// batchBound is B from spec.md §4.3: the fixed number of lines tested
// per request, bounding per-request latency.
const batchBound = 5000

// Request asks the Searcher to test lines [Start, Start+B) against
// Query.
type Request struct {
	Query string
	Start int
}

// Response carries the ascending matched indices within the scanned
// [Start, End) range.
type Response struct {
	Query   string
	Indices []int
	Start   int
	End     int
}

// Searcher is a single-threaded request/reply actor: requests are
// served in the order they are received, so replies are produced in
// request-acceptance order. Both queues are unbounded per spec.md §5:
// a slow Coordinator drain never blocks this actor's reply, and a
// burst of requests never blocks the Coordinator's send.
type Searcher struct {
	store *linestore.Store
	in    *queue.Unbounded[Request]
	out   *queue.Unbounded[Response]
}

// New starts the Searcher's serving loop against store.
func New(store *linestore.Store) *Searcher {
	s := &Searcher{
		store: store,
		in:    queue.NewUnbounded[Request](),
		out:   queue.NewUnbounded[Response](),
	}
	go s.run()
	return s
}

// Requests is the inbound Search channel.
func (s *Searcher) Requests() chan<- Request {
	return s.in.In()
}

// Responses is the outbound DidSearch stream.
func (s *Searcher) Responses() <-chan Response {
	return s.out.Out()
}

func (s *Searcher) run() {
	for req := range s.in.Out() {
		s.out.In() <- s.search(req)
	}
}

func (s *Searcher) search(req Request) Response {
	q := query.Compile(req.Query)

	storeLen := s.store.Len()
	end := req.Start + batchBound
	if end > storeLen {
		end = storeLen
	}

	var indices []int
	if end > req.Start {
		lines := s.store.Slice(req.Start, end)
		for i, line := range lines {
			if q.Match(line.Display()) {
				indices = append(indices, req.Start+i)
			}
		}
	}

	return Response{
		Query:   req.Query,
		Indices: indices,
		Start:   req.Start,
		End:     end,
	}
}
