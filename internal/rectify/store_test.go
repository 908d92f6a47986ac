package rectify

import "testing"

const sampleKnowledgeBase = `
# comment lines and blanks are ignored
曹草率领大军
曹操率领大军
---

今天下雨了吗
今天下午了吗
---
# a record with only one content line is skipped
只有一行
`

func TestStore_LoadText_ParsesRecordsAndSkipsBadBlocks(t *testing.T) {
	s := NewStore(0, 0)
	n := s.LoadText(sampleKnowledgeBase)
	if n != 2 {
		t.Fatalf("LoadText loaded %d records, want 2", n)
	}
	records := s.snapshot()
	if records[0].Wrong != "曹草率领大军" || records[0].Right != "曹操率领大军" {
		t.Errorf("record[0] = %+v", records[0])
	}
	if records[1].Wrong != "今天下雨了吗" || records[1].Right != "今天下午了吗" {
		t.Errorf("record[1] = %+v", records[1])
	}
}

func TestStore_LoadFile_MissingFileIsNoOp(t *testing.T) {
	s := NewStore(0, 0)
	s.LoadText(sampleKnowledgeBase)
	before := len(s.snapshot())

	n, err := s.LoadFile("/nonexistent/path/rectify.txt")
	if err != nil {
		t.Fatalf("LoadFile returned error for missing file: %v", err)
	}
	if n != 0 {
		t.Errorf("LoadFile returned count %d, want 0", n)
	}
	if len(s.snapshot()) != before {
		t.Error("LoadFile should leave the existing knowledge base untouched")
	}
}

func TestStore_LoadText_EmptyTextYieldsNoRecords(t *testing.T) {
	s := NewStore(0, 0)
	n := s.LoadText("")
	if n != 0 {
		t.Errorf("LoadText(\"\") loaded %d records, want 0", n)
	}
}

func TestNewStore_DefaultsAppliedForNonPositiveValues(t *testing.T) {
	s := NewStore(0, 0)
	if s.zhMinPhonemes != DefaultZhMinPhonemes {
		t.Errorf("zhMinPhonemes = %d, want %d", s.zhMinPhonemes, DefaultZhMinPhonemes)
	}
	if s.expandWords != DefaultExpandWords {
		t.Errorf("expandWords = %d, want %d", s.expandWords, DefaultExpandWords)
	}
}
