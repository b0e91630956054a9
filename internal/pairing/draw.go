package pairing

import "fmt"

// DefaultMaxAttempts bounds the number of permutations tried per draw.
// A random permutation is a derangement with probability ~1/e (1/2 for two
// accounts), so exhausting the bound with distinct accounts is practically
// impossible.
const DefaultMaxAttempts = 100

// Pair is one giver -> receiver assignment of a draw.
type Pair struct {
	Giver    string
	Receiver string
}

// Outcome is the result of a successful Draw.
type Outcome struct {
	Pairs    []Pair
	Attempts int
}

// Draw pairs every account in accounts with a receiver drawn from the same
// accounts so that nobody receives from themselves.
//
// Givers keep the roster order; receivers are a fresh uniform shuffle on
// every attempt. A permutation containing a self pair is discarded entirely.
func Draw(accounts []string, src Source, maxAttempts int) (*Outcome, error) {
	if distinct(accounts) < 2 {
		return nil, ErrInsufficientMembers
	}
	if src == nil {
		src = globalSource{}
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	receivers := make([]string, len(accounts))
	copy(receivers, accounts)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		src.Shuffle(len(receivers), func(i, j int) {
			receivers[i], receivers[j] = receivers[j], receivers[i]
		})
		if hasSelfPair(accounts, receivers) {
			continue
		}

		pairs := make([]Pair, len(accounts))
		for i, giver := range accounts {
			pairs[i] = Pair{Giver: giver, Receiver: receivers[i]}
		}
		return &Outcome{Pairs: pairs, Attempts: attempt}, nil
	}

	return nil, fmt.Errorf("%w: %d attempts for %d accounts", ErrUnresolvableAfterRetries, maxAttempts, len(accounts))
}

// Validate checks that pairs is a complete pairing of accounts: every account
// gives exactly once, receives exactly once, and never to itself.
func Validate(accounts []string, pairs []Pair) error {
	if len(pairs) != len(accounts) {
		return fmt.Errorf("expected %d pairs, got %d", len(accounts), len(pairs))
	}

	want := make(map[string]int, len(accounts))
	for _, a := range accounts {
		want[a]++
	}
	gives := make(map[string]int, len(accounts))
	receives := make(map[string]int, len(accounts))
	for _, p := range pairs {
		if p.Giver == p.Receiver {
			return fmt.Errorf("self pair for %s", p.Giver)
		}
		gives[p.Giver]++
		receives[p.Receiver]++
	}
	for _, a := range accounts {
		n := want[a]
		if gives[a] != n {
			return fmt.Errorf("%s gives %d times, want %d", a, gives[a], n)
		}
		if receives[a] != n {
			return fmt.Errorf("%s receives %d times, want %d", a, receives[a], n)
		}
	}
	return nil
}

func hasSelfPair(givers, receivers []string) bool {
	for i := range givers {
		if givers[i] == receivers[i] {
			return true
		}
	}
	return false
}

func distinct(accounts []string) int {
	seen := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		seen[a] = struct{}{}
	}
	return len(seen)
}
