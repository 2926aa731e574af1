// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used by soak runs.
const GO_ROUTINES = 8

// MAX_TURNS caps a single game run by the engine.
const MAX_TURNS = 300

// SOAK_GAMES is the default number of random games played by a soak run.
const SOAK_GAMES = 200

// SOAK_SEED seeds soak runs when no seed is configured.
const SOAK_SEED = 1

// DEFAULT_LAYOUT is the starting position used when none is given: two rows of
// runners per side with a carrier in the middle of the back row.
const DEFAULT_LAYOUT = "RRRCRRRR/RRRRRRRR/8/8/8/8/rrrrrrrr/rrrrcrrr"

// OUT_DIR is where experiment records are written.
const OUT_DIR = "experiments/records"
