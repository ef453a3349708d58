// Package selection scores catalog rule records against a detected project
// context and assembles the justified, ranked selection report.
package selection
