package thread_test

import (
	"fmt"

	"github.com/dogukanarat/go-osal/internal/diag"
	"github.com/dogukanarat/go-osal/status"
	"github.com/dogukanarat/go-osal/thread"
)

func ExampleNew() {
	result := make(chan int, 1)
	th, err := thread.New(func(arg any) {
		result <- arg.(int) * 2
	}, 21, &thread.Attr{Name: "doubler"})
	if err != nil {
		panic(err)
	}

	diag.Default.Info().Str("thread", th.Name()).Log("launched") // narration only; goes to stderr
	fmt.Println(<-result)

	if st := th.Join(status.WaitForever); st != status.Success {
		panic(st)
	}
	// Output: 42
}
