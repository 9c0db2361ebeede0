package expr_test

import (
	"fmt"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
)

func ExampleParse() {
	exps, err := expr.Parse("kg*m/s^2")
	if err != nil {
		panic(err)
	}
	fmt.Println(exps.String())
	// Output: kg*m*s^-2
}

func ExampleParse_grouped() {
	exps, _ := expr.Parse("(m/s)^2")
	fmt.Println(exps["m"], exps["s"])
	// Output: 2 -2
}

func ExampleParseWithBudget() {
	_, err := expr.ParseWithBudget("(N)(m)", 10)
	fmt.Println(errors.Is(err, errors.ErrParserExhaustion))
	// Output: true
}
