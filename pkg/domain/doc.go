/*
Package domain contains the core domain models of the dfakit engine.

It defines the fundamental entities of a deterministic finite automaton: States, the
per-state Transition Tables, the State Registry that owns them, and the immutable
Automaton produced by the builder. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - State: A named node of the automaton, optionally initial and/or final.
  - Transition: An edge (From, Symbol, To) consuming exactly one rune.
  - TransitionTable: The per-state symbol -> destination lookup.
  - Registry: Ordered, name-indexed collection of states with flag management.
  - Automaton: The immutable result of a build, consumed by the simulator.
  - Result: The verdict of a single simulation run.
*/
package domain
