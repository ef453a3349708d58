// Package cli wires the ruleaudit root command: persistent configuration and
// logging flags, Viper-backed configuration loading, and the audit, rules, and
// mece subcommands.
package cli
