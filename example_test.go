package dfakit_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/dfakit"
)

// ExampleEngine_Load builds an automaton from a descriptor and tests a few strings.
func ExampleEngine_Load() {
	eng, err := dfakit.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	a, err := eng.Load(ctx, strings.NewReader("q0,q1\nq0\nq1\nq0,a,q1\nq1,a,q1\n"))
	if err != nil {
		log.Fatal(err)
	}

	for _, in := range []string{"a", "aaa", "", "b"} {
		res, err := eng.Run(ctx, a, in)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%q %s %s\n", in, res.Verdict, res.Status)
	}

	// Output:
	// "a" accepted accepted
	// "aaa" accepted accepted
	// "" rejected rejected
	// "b" rejected stuck
}

// ExampleEngine_NewBuilder assembles the same automaton token by token.
func ExampleEngine_NewBuilder() {
	eng, err := dfakit.New()
	if err != nil {
		log.Fatal(err)
	}

	b := eng.NewBuilder()
	if err := b.DeclareStates("even,odd"); err != nil {
		log.Fatal(err)
	}
	if err := b.SetInitial("even"); err != nil {
		log.Fatal(err)
	}
	if err := b.SetFinal("even"); err != nil {
		log.Fatal(err)
	}
	for _, t := range []string{"even,0,odd", "odd,0,even", "even,1,even", "odd,1,odd"} {
		if err := b.AddTransition(t); err != nil {
			log.Fatal(err)
		}
	}

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(context.Background(), a, "1001")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Verdict, res.Path)

	// Output:
	// accepted [even even odd even even]
}
