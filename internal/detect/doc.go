// Package detect infers the technical context of a target project from marker
// files on disk: programming languages, cloud providers, and a maturity tier.
package detect
