// Package lineage implements the versioned certificate store renewd
// mutates: one lineage per certificate identity, holding an ordered
// archive of versions and a set of live symlinks marking the deployed
// one.
//
// # Layout
//
// Versions live in the work directory, live pointers in the config
// directory:
//
//	<work_dir>/archive/example.com/cert1.pem
//	<work_dir>/archive/example.com/privkey1.pem
//	<work_dir>/archive/example.com/chain1.pem
//	<work_dir>/archive/example.com/cert2.pem
//	...
//	<config_dir>/live/example.com/cert.pem    -> ../../archive/example.com/cert2.pem
//	<config_dir>/live/example.com/privkey.pem -> ../../archive/example.com/privkey2.pem
//	<config_dir>/live/example.com/chain.pem   -> ../../archive/example.com/chain2.pem
//
// Version numbers increase monotonically; existing versions are never
// rewritten or deleted. A successor may share its predecessor's key,
// recorded as a symlink inside the archive.
//
// # Mutation
//
// SaveSuccessor appends a version, AdvanceCurrentTo repoints the live
// symlinks; nothing else writes. SaveSuccessor holds a file lock on
// the archive, so overlapping scheduled runs cannot both mutate one
// lineage.
//
// # Policy
//
// ShouldAutorenew and ShouldAutodeploy are the pure renewal-policy
// predicates evaluated by the batch driver, derived from the lineage's
// merged configuration and the recorded versions.
package lineage
