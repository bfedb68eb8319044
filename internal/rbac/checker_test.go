package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"teacher", PermImport, true},
		{"teacher", PermQuestionRead, true},
		{"viewer", PermQuestionRead, true},
		{"viewer", PermImport, false},
		{"admin", PermImport, true},
		{"admin", "anything:at:all", true},
		{"", PermQuestionRead, false},
		{"unknown", PermQuestionRead, false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestCheckerWildcardPrefix(t *testing.T) {
	c := NewChecker(map[string][]string{"importer": {"qml:*"}})
	if !c.Has("importer", PermImport) {
		t.Errorf("qml:* should grant %s", PermImport)
	}
	if c.Has("importer", PermQuestionRead) {
		t.Errorf("qml:* should not grant %s", PermQuestionRead)
	}
}

func TestRequireMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Require(PermImport)(next)

	cases := []struct {
		role string
		want int
	}{
		{"teacher", http.StatusNoContent},
		{"admin", http.StatusNoContent},
		{"viewer", http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/qml/import", nil)
		if tc.role != "" {
			req = req.WithContext(WithRole(context.Background(), tc.role))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("role %q: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}
