package forum

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestReplySlotLastWriterWins(t *testing.T) {
	var slot replySlot

	first := uuid.New()
	second := uuid.New()
	slot.start(first, "Leo", "primer mensaje")
	slot.start(second, "Kun", "segundo mensaje")

	ref := slot.current()
	if ref == nil {
		t.Fatal("expected a pending reply")
	}
	if ref.MessageID != second {
		t.Error("starting a new reply should replace the previous one")
	}
	if ref.AuthorName != "Kun" {
		t.Errorf("author = %q, want Kun", ref.AuthorName)
	}
}

func TestReplySlotCancel(t *testing.T) {
	var slot replySlot
	slot.start(uuid.New(), "Leo", "hola")
	slot.cancel()
	if slot.current() != nil {
		t.Error("cancel should clear the slot")
	}

	// cancel on an empty slot is a no-op
	slot.cancel()
	if slot.current() != nil {
		t.Error("repeated cancel should stay empty")
	}
}

func TestReplySlotTakeClears(t *testing.T) {
	var slot replySlot
	id := uuid.New()
	slot.start(id, "Leo", "hola")

	ref := slot.take()
	if ref == nil || ref.MessageID != id {
		t.Fatal("take should return the pending reference")
	}
	if slot.current() != nil {
		t.Error("take should clear the slot")
	}
	if slot.take() != nil {
		t.Error("take on an empty slot should return nil")
	}
}

func TestExcerptTruncatesByRunes(t *testing.T) {
	long := strings.Repeat("ñ", 150)

	var slot replySlot
	slot.start(uuid.New(), "Leo", long)

	ref := slot.current()
	if got := len([]rune(ref.Excerpt)); got != 100 {
		t.Errorf("excerpt length = %d runes, want 100", got)
	}
	if !strings.HasPrefix(long, ref.Excerpt) {
		t.Error("excerpt should be a prefix of the quoted body")
	}
}

func TestExcerptShortBodyUntouched(t *testing.T) {
	var slot replySlot
	slot.start(uuid.New(), "Leo", "qué golazo")

	if ref := slot.current(); ref.Excerpt != "qué golazo" {
		t.Errorf("excerpt = %q, want the full body", ref.Excerpt)
	}
}
