// Command bench runs the same fixed-size workload through this
// module's Fixed pool and through two reference pool implementations,
// alitto/pond and devchat-ai/gopool, and reports wall-clock time for
// each. It exists to sanity-check that this module's facade overhead
// is in the same ballpark as comparable libraries, not to be a
// rigorous benchmark.
package main

import (
	"log"
	"sync"
	"time"

	"github.com/alitto/pond"
	"github.com/devchat-ai/gopool"

	"github.com/corepool/gwpool"
)

const taskCount = 20000

func work(n int) int {
	sum := n
	for i := 0; i < 1000; i++ {
		sum += i
	}
	return sum
}

func benchGwpool() time.Duration {
	start := time.Now()

	p := gwpool.New[int](gwpool.Fixed)
	p.Start(8)
	defer p.Stop()

	handles := make([]*gwpool.ResultHandle[int], taskCount)
	for i := range handles {
		i := i
		handles[i] = p.Submit(func() int { return work(i) })
	}
	for _, h := range handles {
		h.Get()
	}

	return time.Since(start)
}

func benchPond() time.Duration {
	start := time.Now()

	pool := pond.New(8, taskCount)
	var wg sync.WaitGroup
	wg.Add(taskCount)
	for i := 0; i < taskCount; i++ {
		i := i
		pool.Submit(func() {
			defer wg.Done()
			work(i)
		})
	}
	wg.Wait()
	pool.StopAndWait()

	return time.Since(start)
}

func benchGopool() time.Duration {
	start := time.Now()

	pool := gopool.NewGoPool(8)
	var wg sync.WaitGroup
	wg.Add(taskCount)
	for i := 0; i < taskCount; i++ {
		i := i
		pool.AddTask(func() (interface{}, error) {
			defer wg.Done()
			return work(i), nil
		})
	}
	wg.Wait()
	pool.Release()

	return time.Since(start)
}

func main() {
	log.Printf("gwpool (fixed): %v", benchGwpool())
	log.Printf("pond:           %v", benchPond())
	log.Printf("gopool:         %v", benchGopool())
}
