/*
Package builder assembles a domain.Automaton from token streams.

The same primitives serve every construction source: a Builder receives the state
list, the initial state, the final-state list and then transitions one at a time,
whether they come from a descriptor file, an HTTP body or an interactive console.

	b := builder.New()
	_ = b.DeclareStates("q0,q1")
	_ = b.SetInitial("q0")
	_ = b.SetFinal("q1")
	_ = b.AddTransition("q0,a,q1")
	a, err := b.Build()

By default the builder validates strictly: unknown final states, dangling endpoints,
conflicting symbols and a missing initial state abort construction. WithValidation(false)
restores the permissive behaviour of accepting what can be accepted and reporting the
rest through Warnings.
*/
package builder
