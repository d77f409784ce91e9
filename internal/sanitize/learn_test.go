package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const learnBase = `The caravan left at dawn.

Nobody spoke until the third mile.

By dusk the walls were a smudge on the horizon.`

func withDecoy(base, decoy string, afterLine int) string {
	lines := strings.Split(base, "\n")
	out := make([]string, 0, len(lines)+2)
	out = append(out, lines[:afterLine]...)
	out = append(out, "", decoy)
	out = append(out, lines[afterLine:]...)
	return strings.Join(out, "\n")
}

func TestLearnFindsInjectedDecoy(t *testing.T) {
	decoy := "This story was taken without consent; report it."

	// the decoy appears in the middle sample only, so it surfaces once as
	// an insertion and once as a deletion across the consecutive pairs
	samples := []string{
		learnBase,
		withDecoy(learnBase, decoy, 2),
		learnBase,
	}

	got := Learn(samples)
	require.Len(t, got, 1)
	assert.Equal(t, decoy, got[0])
}

func TestLearnFindsVaryingPositions(t *testing.T) {
	decoy := "Find this tale only on its home site."

	samples := []string{
		withDecoy(learnBase, decoy, 0),
		withDecoy(learnBase, decoy, 2),
		withDecoy(learnBase, decoy, 4),
	}

	got := Learn(samples)
	require.NotEmpty(t, got)
	assert.Contains(t, got, decoy)
}

func TestLearnRejectsOneOffDifference(t *testing.T) {
	// a single sample with a typo fix differs in exactly one pairwise
	// comparison; that is noise, not a decoy
	typoed := strings.Replace(learnBase, "third mile", "thrid mile", 1)

	samples := []string{
		learnBase,
		learnBase,
		typoed,
	}

	assert.Empty(t, Learn(samples))
}

func TestLearnIdenticalSamples(t *testing.T) {
	samples := []string{learnBase, learnBase, learnBase, learnBase}
	assert.Empty(t, Learn(samples))
}

func TestLearnTooFewSamples(t *testing.T) {
	assert.Empty(t, Learn(nil))
	assert.Empty(t, Learn([]string{learnBase}))
}

func TestLearnIgnoresWhitespaceNoise(t *testing.T) {
	decoy := "Unauthorized copy detected."

	reflowed := strings.ReplaceAll(learnBase, " until ", "  until ")
	samples := []string{
		learnBase,
		withDecoy(learnBase, decoy, 2),
		reflowed,
	}

	got := Learn(samples)
	require.Len(t, got, 1)
	assert.Equal(t, decoy, got[0])
}

// Sanitizing with a learned corpus must reach a fixed point: once the
// decoys are stripped, repeated fetches of the same chapter agree, so a
// second learning round finds nothing new.
func TestLearnThenSanitizeFixedPoint(t *testing.T) {
	decoy := "This story was taken without consent; report it."
	samples := []string{
		learnBase,
		withDecoy(learnBase, decoy, 2),
		withDecoy(learnBase, decoy, 4),
		learnBase,
	}

	learned := Learn(samples)
	require.Contains(t, learned, decoy)

	c := NewCorpus("testsite", learned...)
	cleaned := make([]string, len(samples))
	for i, s := range samples {
		cleaned[i] = Sanitize(s, c)
	}
	for i := 1; i < len(cleaned); i++ {
		assert.Equal(t, cleaned[0], cleaned[i], "sample %d still differs after sanitization", i)
	}
	assert.Empty(t, Learn(cleaned))
}
