package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/coursegraph/coursegraph/pkg/httputil"
	"github.com/coursegraph/coursegraph/pkg/integrations/catalogue"
)

func TestFormatFlatCatalog(t *testing.T) {
	entries := map[string]string{
		"MATH101":   "",
		"CS201":     "CS101",
		"BIOCH 200": "CHEM101 or CHEM105",
	}

	got := formatFlatCatalog(entries)
	want := "BIOCH 200 : CHEM101 or CHEM105\nCS201 : CS101\nMATH101 : \n"
	if got != want {
		t.Errorf("formatFlatCatalog() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatFlatCatalogEmpty(t *testing.T) {
	if got := formatFlatCatalog(nil); got != "" {
		t.Errorf("formatFlatCatalog(nil) = %q, want empty", got)
	}
}

func TestFetchEntriesNoDepartments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	cache, err := httputil.NewCache(filepath.Join(t.TempDir(), "http"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	client := catalogue.NewClientWithCache(srv.URL, cache)
	c, _ := testCLI(t)

	// A catalogue that lists no departments must fail up front, for the
	// interactive path as much as the plain one.
	if _, err := c.fetchEntries(context.Background(), client, nil, false, true); err == nil {
		t.Error("fetchEntries() should fail when the catalogue lists no departments")
	}
	if _, err := c.fetchEntries(context.Background(), client, nil, false, false); err == nil {
		t.Error("fetchEntries() should fail before starting the interactive fetch")
	}
}
