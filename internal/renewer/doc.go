// Package renewer contains the renewal core: the policy-driven batch
// driver that walks the renewal configuration directory, and the
// executor that performs a single renewal attempt against a lineage
// store.
//
// The batch driver merges configuration in three layers (built-in
// defaults, the renewer-wide config file, the per-lineage config file),
// evaluates each lineage's autorenew and autodeploy predicates exactly
// once, and contains faults per lineage so one broken configuration
// never stops the others.
//
// The executor is all-or-nothing. It either records a complete new
// version through the store or leaves the lineage untouched, and it
// always requests exactly the name set of the base version's
// certificate.
package renewer
