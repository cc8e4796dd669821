package fanout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sicko7947/statepass"
)

// resultsKey derives the logical key branch results are stored under.
func resultsKey(key string) string {
	return key + "-results"
}

// Run stores the documents as a list, then processes each element on its own
// goroutine the way a map state runs parallel branches. Every branch writes
// its result through map-iteration addressing: the branch index becomes the
// sort key, so branches never collide and need no coordination.
func Run(ctx context.Context, client *statepass.Client, req FanoutRequest) (*statepass.ListLocator, error) {
	if req.Key == "" {
		return nil, errors.New("fanout request needs a key")
	}

	locator, err := client.PutItems(ctx, req.Key, statepass.AsItems(req.Documents))
	if err != nil {
		return nil, fmt.Errorf("failed to store input list: %w", err)
	}

	var wg sync.WaitGroup
	branchErrs := make([]error, len(req.Documents))

	for i, doc := range req.Documents {
		wg.Add(1)
		go func(index int, doc Document) {
			defer wg.Done()

			event := statepass.MapIterationEvent{
				ItemsResultKey: resultsKey(req.Key),
				ContextIndex:   statepass.ToPtr(index),
			}
			result := BranchResult{
				Index:     index,
				WordCount: len(strings.Fields(doc.Text)),
			}

			if _, err := client.PutItemForMapIteration(ctx, event, result); err != nil {
				branchErrs[index] = fmt.Errorf("branch %d: %w", index, err)
			}
		}(i, doc)
	}

	wg.Wait()

	if err := errors.Join(branchErrs...); err != nil {
		return nil, err
	}

	return locator, nil
}

// CollectResults gathers the branch results for a fan-out in branch order.
func CollectResults(ctx context.Context, client *statepass.Client, key string) ([]BranchResult, error) {
	raw, err := client.GetItems(ctx, resultsKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branch results: %w", err)
	}
	return statepass.DecodeItems[BranchResult](raw)
}
