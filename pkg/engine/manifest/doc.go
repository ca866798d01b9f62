// Package manifest picks the stages of an engine by name from a YAML file.
//
// A Catalog holds every stage reference a program knows about, keyed by the
// reference name. A Manifest names which of them go into each slot:
//
//	datasource: ratings-csv
//	preparator: index
//	algorithms:
//	  baseline: popular
//	  personal: als
//	serving: first
//
// Apply resolves the names and feeds the references to an engine.Builder.
// Stage params are not part of the manifest; they are handed to Ref.New by
// the driver.
package manifest
