// Package types defines the format-agnostic entities of a coding session:
// behavioral and global codes, utterances and their lifecycle, the
// application Config, and the standard errors shared across packages.
//
// Neither the legacy transcript codec nor the relational session store is
// visible from here; both adapt these types in their own packages.
package types
