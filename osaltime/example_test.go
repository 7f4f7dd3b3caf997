package osaltime_test

import (
	"fmt"

	"github.com/dogukanarat/go-osal/internal/diag"
	"github.com/dogukanarat/go-osal/osaltime"
	"github.com/dogukanarat/go-osal/status"
)

func ExampleGetUnixTime() {
	sec, _, st := osaltime.GetUnixTime()
	if st != status.Success {
		panic(st)
	}
	diag.Default.Info().Int64("unix_seconds", sec).Log("read system clock") // narration only; goes to stderr
	fmt.Println(sec > 0)
	// Output: true
}
