// Command demo exercises all three gwpool scheduling policies against
// the same workload and prints their timing, so the three policies can
// be eyeballed side by side.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corepool/gwpool"
)

const tasksPerPolicy = 2000

func square(n int) func() int {
	return func() int {
		time.Sleep(time.Millisecond)
		return n * n
	}
}

func runPolicy(ctx context.Context, mode gwpool.Mode) error {
	p := gwpool.New[int](mode)
	if mode == gwpool.Cached {
		p.SetThreadMaxCount(32)
		p.SetThreadIdleTimeout(5 * time.Second)
	}
	p.Start(8)
	defer p.Stop()

	start := time.Now()
	handles := make([]*gwpool.ResultHandle[int], tasksPerPolicy)
	for i := range handles {
		handles[i] = p.Submit(square(i))
	}

	var sum int
	for _, h := range handles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		sum += h.Get()
	}

	log.Printf("%-6s pool: %d tasks in %v, sum=%d", mode, tasksPerPolicy, time.Since(start), sum)
	return nil
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	for _, mode := range []gwpool.Mode{gwpool.Fixed, gwpool.Cached, gwpool.Active} {
		mode := mode
		g.Go(func() error {
			return runPolicy(gctx, mode)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Println("demo run failed:", err)
	}
}
