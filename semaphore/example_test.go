package semaphore_test

import (
	"fmt"

	"github.com/dogukanarat/go-osal/internal/diag"
	"github.com/dogukanarat/go-osal/semaphore"
	"github.com/dogukanarat/go-osal/status"
)

func ExampleNewHost() {
	s, err := semaphore.NewHost(&semaphore.Attr{Max: 2, Initial: 2})
	if err != nil {
		panic(err)
	}
	defer s.Close()

	if st := s.Take(status.NoWait); st != status.Success {
		panic(st)
	}
	diag.Default.Info().Int("count", int(s.Count())).Log("took one unit") // narration only; goes to stderr
	fmt.Println("count after one take:", s.Count())

	if st := s.Give(); st != status.Success {
		panic(st)
	}
	fmt.Println("count after give:", s.Count())

	// Output:
	// count after one take: 1
	// count after give: 2
}
