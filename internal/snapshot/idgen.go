package snapshot

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// adjectives and nouns back newSnapshotID's human-readable identifiers,
// generalized from the word lists a session id generator in the teacher
// repo used for its own opaque-but-debuggable ids.
var adjectives = []string{
	"amber", "brisk", "calm", "dusty", "eager", "faded", "gentle", "hollow",
	"idle", "jagged", "keen", "lively", "mellow", "nimble", "opal", "plain",
	"quiet", "rapid", "slow", "tidy", "ubiquitous", "vivid", "wary", "yellow",
	"zesty", "bold", "crisp", "dim", "early", "fierce", "grim", "hazy",
}

var nouns = []string{
	"finch", "grove", "heron", "island", "jetty", "kestrel", "lantern",
	"meadow", "nest", "otter", "pebble", "quarry", "river", "stone",
	"thicket", "urchin", "valley", "willow", "xylophone", "yew", "zephyr",
	"badger", "cedar", "delta", "ember", "fjord", "glade", "harbor",
}

func randomWord(words []string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		// crypto/rand failure is effectively unrecoverable on any real
		// platform; fall back to a fixed word rather than panicking.
		return words[0]
	}
	return words[n.Int64()]
}

// newSnapshotID produces a "<seq>-<adjective>-<noun>" identifier: opaque
// but readable in logs, and distinct from a content hash per the spec's
// "monotonic sequence-based" identifier requirement.
func newSnapshotID(seq int) string {
	return fmt.Sprintf("%d-%s-%s", seq, randomWord(adjectives), randomWord(nouns))
}
