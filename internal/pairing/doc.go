// Package pairing implements the secret santa draw.
//
// A draw takes the accounts of a group's members and assigns every account
// exactly one other account to give a gift to. Receivers are a uniformly
// random permutation of the givers; any permutation that maps an account to
// itself is rejected as a whole and drawn again (rejection sampling), so the
// result is uniform over all valid derangements and never has a missing pair.
//
// The Engine wraps the pure Draw function with roster loading, a per-group
// lock and a transactional replacement of the group's previous assignments.
package pairing
