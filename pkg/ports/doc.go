/*
Package ports defines the driven ports (interfaces) for the dfakit engine.

These interfaces decouple the core logic from external implementations, allowing
the builder and the simulator to work with various line sources and storage backends.

# Key Interfaces

  - LineReader: Yields the next line of a descriptor or console session.
  - AutomatonStore: Persists and loads built automata by name.
*/
package ports
