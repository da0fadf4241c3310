package sync

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"shopchat/internal/services/webflow"
	"shopchat/internal/store"
)

func optionCollection() map[string]interface{} {
	return map[string]interface{}{
		"id": "col1",
		"fields": []interface{}{
			map[string]interface{}{
				"id": "f1", "slug": "manufacturer", "type": "Option",
				"validations": map[string]interface{}{
					"options": []interface{}{
						map[string]interface{}{"id": "opt-acme", "name": "Acme Corp"},
						map[string]interface{}{"id": "opt-beta", "name": "Beta Inc"},
						map[string]interface{}{"id": "", "name": "Nameless"},
						map[string]interface{}{"id": "opt-empty", "name": ""},
					},
				},
			},
			map[string]interface{}{
				"id": "f2", "slug": "tags", "type": "MultiOption",
				"validations": map[string]interface{}{
					"options": []interface{}{
						map[string]interface{}{"id": "opt-new", "name": "New Arrival"},
					},
				},
			},
			map[string]interface{}{
				"id": "f3", "slug": "description", "type": "PlainText",
			},
		},
	}
}

func optionStub(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		writeJSON(w, http.StatusOK, optionCollection())
	}))
}

func newOptionSyncer(t *testing.T, baseURL string, st *store.Store) *OptionSyncer {
	t.Helper()
	client := webflow.NewClient(baseURL, "test-token", testLogger())
	return NewOptionSyncer(client, st, testLogger())
}

func TestOptionSyncAllFields(t *testing.T) {
	st := testStore(t)
	var hits int64
	server := optionStub(t, &hits)
	defer server.Close()

	syncer := newOptionSyncer(t, server.URL, st)

	result, err := syncer.Sync("col1", nil)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	// Two valid manufacturer options, one tag; empty id/name skipped,
	// non-option field skipped.
	if result.Synced != 3 {
		t.Errorf("Synced = %d, want 3", result.Synced)
	}

	entries, err := st.OptionEntries()
	if err != nil {
		t.Fatalf("OptionEntries() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("lookup rows = %d, want 3", len(entries))
	}
}

func TestOptionSyncAllowList(t *testing.T) {
	st := testStore(t)
	var hits int64
	server := optionStub(t, &hits)
	defer server.Close()

	syncer := newOptionSyncer(t, server.URL, st)

	result, err := syncer.Sync("col1", []string{"manufacturer"})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.Synced != 2 {
		t.Errorf("Synced = %d, want 2 (tags excluded by allow-list)", result.Synced)
	}
}

func TestOptionSyncIdempotent(t *testing.T) {
	st := testStore(t)
	var hits int64
	server := optionStub(t, &hits)
	defer server.Close()

	syncer := newOptionSyncer(t, server.URL, st)

	if _, err := syncer.Sync("col1", nil); err != nil {
		t.Fatalf("first Sync() error = %v", err)
	}
	if _, err := syncer.Sync("col1", nil); err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}

	entries, _ := st.OptionEntries()
	if len(entries) != 3 {
		t.Errorf("lookup rows = %d after re-sync, want 3", len(entries))
	}
}

func TestOptionSyncRequiresCollectionID(t *testing.T) {
	st := testStore(t)
	var hits int64
	server := optionStub(t, &hits)
	defer server.Close()

	syncer := newOptionSyncer(t, server.URL, st)

	if _, err := syncer.Sync("", nil); err == nil {
		t.Fatal("Sync(\"\") succeeded, want error")
	}
	if atomic.LoadInt64(&hits) != 0 {
		t.Errorf("vendor was called %d times before validation", hits)
	}
}

func TestOptionSyncVendorFailureIsFatal(t *testing.T) {
	st := testStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	syncer := newOptionSyncer(t, server.URL, st)

	if _, err := syncer.Sync("col1", nil); err == nil {
		t.Fatal("Sync() succeeded despite vendor failure")
	}
}
