package represent_test

import (
	"fmt"

	"failmsg/pkg/represent"
)

func Example() {
	fmt.Println(represent.Represent([]any{"abc", 1, nil}))
	fmt.Println(represent.Represent(map[string]int{"b": 2, "a": 1}))

	r, err := represent.New(represent.WithQuoting(represent.QuoteNone), represent.WithMaxElements(4))
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Represent([]string{"a", "b", "c", "d", "e", "f"}))
	// Output:
	// ["abc", 1, null]
	// {"a"=1, "b"=2}
	// [a, b, ..., e, f]
}

func ExampleRegisterFor() {
	type celsius float64

	reg := represent.NewRegistry()
	if err := represent.RegisterFor(reg, func(c celsius) string { return fmt.Sprintf("%.1f°C", float64(c)) }); err != nil {
		panic(err)
	}
	reg.Freeze()

	r, err := represent.New(represent.WithRegistry(reg))
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Represent([]celsius{21.5, -3}))
	// Output:
	// [21.5°C, -3.0°C]
}
