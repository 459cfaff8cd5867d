package paging_test

import (
	"testing"

	"github.com/dalemusser/commonshub/internal/app/system/paging"
)

func makeRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestTrimPage_FirstPage(t *testing.T) {
	rows := makeRows(paging.PageSize + 1)
	res := paging.TrimPage(&rows, "", "")

	if len(rows) != paging.PageSize {
		t.Errorf("rows: got %d, want %d", len(rows), paging.PageSize)
	}
	if !res.HasNext || res.HasPrev {
		t.Errorf("result: %+v", res)
	}
}

func TestTrimPage_LastPageForward(t *testing.T) {
	rows := makeRows(10)
	res := paging.TrimPage(&rows, "", "somecursor")

	if len(rows) != 10 {
		t.Errorf("rows: got %d, want 10", len(rows))
	}
	if res.HasNext || !res.HasPrev {
		t.Errorf("result: %+v", res)
	}
}

func TestTrimPage_Backward(t *testing.T) {
	rows := makeRows(paging.PageSize + 1)
	res := paging.TrimPage(&rows, "somecursor", "")

	if len(rows) != paging.PageSize {
		t.Errorf("rows: got %d, want %d", len(rows), paging.PageSize)
	}
	if rows[0] != 1 {
		t.Errorf("expected the surplus row trimmed from the front, got first=%d", rows[0])
	}
	if !res.HasNext || !res.HasPrev {
		t.Errorf("result: %+v", res)
	}
}

func TestConfigureKeyset(t *testing.T) {
	cfg := paging.ConfigureKeyset("", "")
	if cfg.Direction != paging.Forward || cfg.SortOrder != 1 || cfg.Cursor != nil {
		t.Errorf("default config: %+v", cfg)
	}

	cfg = paging.ConfigureKeyset("garbage", "")
	if cfg.Direction != paging.Backward || cfg.SortOrder != -1 {
		t.Errorf("backward config: %+v", cfg)
	}
	if cfg.Cursor != nil {
		t.Error("garbage cursor should be ignored")
	}
	if cfg.KeysetWindow("name_ci") != nil {
		t.Error("no cursor means no window clause")
	}
}

func TestReverse(t *testing.T) {
	rows := []int{1, 2, 3}
	paging.Reverse(rows)
	if rows[0] != 3 || rows[2] != 1 {
		t.Errorf("rows: %v", rows)
	}
}
