/*
Package dfakit builds deterministic finite automata (DFA) and simulates input strings against them.

An automaton is assembled either from a plain-text descriptor or token by token (for
example from an interactive console), validated, and then run against any number of
inputs. Each run ends in exactly one verdict: Accepted or Rejected. A symbol without a
transition leaves the run Stuck, which is a normal Rejected outcome and not an error.

# Descriptor Format

	q0,q1        <- states, declaration order
	q0           <- initial state
	q1           <- final states (may be empty)
	q0,a,q1      <- transitions, one "from,symbol,to" per line
	q1,a,q1

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"strings"

		"github.com/aretw0/dfakit"
	)

	func main() {
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
			fmt.Println(in, res.Verdict)
		}
	}
*/
package dfakit
