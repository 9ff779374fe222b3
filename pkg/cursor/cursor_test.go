package cursor

import "testing"

// 编解码往返
func TestCursor_RoundTrip(t *testing.T) {
	in := &Cursor{Rank: 3.1415, Time: 1700000000123456789, Score: -42, ID: 987654321}

	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Rank != in.Rank || out.Time != in.Time || out.Score != in.Score || out.ID != in.ID {
		t.Fatalf("roundtrip mismatch: in=%+v out=%+v", in, out)
	}
}

// 空游标表示第一页
func TestCursor_Empty(t *testing.T) {
	c, err := Decode("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil cursor, got %+v", c)
	}
}

// 非法输入直接拒绝
func TestCursor_Garbage(t *testing.T) {
	cases := []string{
		"not-base64!!!",
		"bm90LWpzb24",      // base64("not-json")
		"e30",              // base64("{}") 缺少ID
		"eyJpZCI6MH0",      // base64(`{"id":0}`)
	}

	for _, s := range cases {
		if _, err := Decode(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}
