// Package audit orchestrates the depth-gated pipeline over a rules knowledge
// base: project context detection, rule selection, content-consistency
// analysis, the placeholder accuracy audit, and archived-file disposition.
// Stages skipped by the configured depth stay nil in the result so serialized
// reports state their absence explicitly.
package audit
