// Package catalog loads the declarative rules index into normalized,
// category-bucketed RuleRecords and summarizes the narrative reference
// document that accompanies the rules repository.
package catalog
