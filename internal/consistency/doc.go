// Package consistency approximates a MECE (mutually exclusive, collectively
// exhaustive) check over the rules document corpus: it profiles each document's
// lexical features, detects redundant content between same-category documents,
// flags expected topics missing from each category, and condenses the outcome
// into a composite consistency score.
package consistency
