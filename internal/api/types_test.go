package api

import "testing"

func TestDecodeList_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{"bare array", `["a","b"]`, []string{"a", "b"}, false},
		{"data wrapper", `{"data":["a"]}`, []string{"a"}, false},
		{"content wrapper", `{"content":["a","b","c"]}`, []string{"a", "b", "c"}, false},
		{"empty array", `[]`, nil, false},
		{"unrecognized object", `{"items":["a"]}`, nil, true},
		{"scalar", `42`, nil, true},
		{"empty body", ``, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeList[string]([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodePage(t *testing.T) {
	body := `{"content":[{"id":1,"question":"q","answer":"a","category":"fees"}],"number":2,"size":20,"totalElements":41,"totalPages":3}`
	page, err := decodePage[FAQ]([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Question != "q" {
		t.Errorf("Items = %+v, want one FAQ with question %q", page.Items, "q")
	}
	if page.Number != 2 || page.TotalPages != 3 || page.TotalElements != 41 {
		t.Errorf("paging = %d/%d/%d, want 2/3/41", page.Number, page.TotalPages, page.TotalElements)
	}
}

func TestDecodePage_RejectsUnknownShape(t *testing.T) {
	if _, err := decodePage[FAQ]([]byte(`{"results":[]}`)); err == nil {
		t.Fatal("expected unrecognized page shape to be rejected")
	}
}
