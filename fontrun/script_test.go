package fontrun

import "testing"

func TestScriptRunsResolvesCommonToNeighbor(t *testing.T) {
	cps := []rune("ab کد") // Latin, space (Common), Arabic
	tags := scriptRuns(cps)

	if tags[0] != scriptLatin || tags[1] != scriptLatin {
		t.Fatalf("expected Latin script for 'ab', got %x %x", tags[0], tags[1])
	}
	arabic := tag("Arab")
	if tags[3] != arabic || tags[4] != arabic {
		t.Fatalf("expected Arabic script for 'کد', got %x %x", tags[3], tags[4])
	}
}

func TestIsCombining(t *testing.T) {
	if !isCombining('́') { // combining acute accent
		t.Error("U+0301 should be combining")
	}
	if isCombining('a') {
		t.Error("'a' should not be combining")
	}
}
