package errx_test

import (
	"errors"
	"fmt"

	"failmsg/pkg/errx"
)

func Example() {
	errBadTemplate := errors.New("bad template")

	err := errx.Template("template expects 2 arguments, got 1").
		WithBase(errBadTemplate).
		WithContext("args", 1).
		WithContext("directives", 2)

	if errors.Is(err, errBadTemplate) && errx.IsDefect(err) {
		fmt.Println("defect:", errx.UserString(err))
	}
	fmt.Println(errx.DebugString(err))
	// Output:
	// defect: template expects 2 arguments, got 1
	// 1: *errx.Error: template expects 2 arguments, got 1 | code=80000 | category="Template defect" | message="template expects 2 arguments, got 1" | context={args=1, directives=2}
}
