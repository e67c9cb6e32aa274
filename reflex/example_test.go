package reflex_test

import (
	"fmt"

	"github.com/ardnew/reflex/reflex"
)

func add(a, b int) int { return a + b }

func Example() {
	r := reflex.New(add, nil)

	fmt.Println(r.Params().List(), r.Params().Count())

	sum, err := r.Params().Bind(reflex.Values{"a": 1}).
		Params().Bind(reflex.Values{"b": 2}).
		Fn()
	fmt.Println(sum, err)

	// Output:
	// [a b] 2
	// 3 <nil>
}

func ExampleParseParams() {
	fmt.Printf("%q\n", reflex.ParseParams("function greet(name /* who */, punct) {}"))

	// Output:
	// ["name" "punct"]
}

func ExampleWithParams() {
	r := reflex.New(add, nil, reflex.WithParams("x", "y")).
		Params().Bind(reflex.Values{"x": 1, "b": 100}).
		Params().Bind(reflex.Values{"y": 2})

	fmt.Println(r.Params().List())
	fmt.Println(r.Fn())

	// Output:
	// [x y]
	// 3 <nil>
}

func ExampleWithUnresolved() {
	r := reflex.New(add, nil, reflex.WithUnresolved(
		func(_ any, name string, _ []reflex.Values) (any, error) {
			fmt.Println("default for", name)

			return 10, nil
		},
	))

	fmt.Println(r.Params().Bind(reflex.Values{"a": 1}).Fn())

	// Output:
	// default for b
	// 11 <nil>
}
