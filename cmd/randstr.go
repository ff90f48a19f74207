package cmd

import (
	"fmt"

	"github.com/live-labs/shed/internal/randtext"
)

// Randstr prints count random strings of length n
func Randstr(n, count int, opts randtext.Options) {
	for i := 0; i < count; i++ {
		s, err := randtext.Generate(n, opts)
		if err != nil {
			HandleError(err)
		}
		fmt.Println(s)
	}
}
