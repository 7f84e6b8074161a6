// Package prompt assembles the model-facing content for every tutor
// operation. It packs the learner's study material into budget-bounded
// segment sequences and renders the instruction text each operation sends
// alongside them. Everything here is pure: no network, no shared state.
package prompt
