package queue_test

import (
	"fmt"

	"github.com/dogukanarat/go-osal/internal/diag"
	"github.com/dogukanarat/go-osal/queue"
	"github.com/dogukanarat/go-osal/status"
)

func ExampleNewGeneric() {
	q, err := queue.NewGeneric[string](2, nil)
	if err != nil {
		panic(err)
	}
	defer q.Close()

	q.Send("first", status.WaitForever)
	q.Send("second", status.WaitForever)
	diag.Default.Info().Int("count", q.Count()).Log("both items enqueued") // narration only; goes to stderr

	for i := 0; i < 2; i++ {
		v, st := q.Receive(status.WaitForever)
		if st != status.Success {
			panic(st)
		}
		fmt.Println(v)
	}

	// Output:
	// first
	// second
}
