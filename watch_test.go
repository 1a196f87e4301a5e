package linguist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	oldDelay := watchDelay
	watchDelay = time.Millisecond
	defer func() {
		watchDelay = oldDelay
	}()

	dir := t.TempDir()
	path := filepath.Join(dir, "wsjtx_it.ts")
	copyFile(t, "testdata/wsjtx_it.ts", path)

	translations := NewTranslations(dir, "wsjtx", nil)
	translations.Use("it")
	assert_equal(t, translations.Tr("MainWindow", "CQ only"), "Solo CQ")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- translations.Watch(ctx)
	}()

	// The watch may not be established yet, so keep rewriting the
	// catalog until the change is picked up.
	deadline := time.Now().Add(5 * time.Second)
	for translations.Tr("MainWindow", "CQ only") != "Soltanto CQ" {
		if time.Now().After(deadline) {
			t.Fatal("catalog change was not picked up")
		}
		if err := os.WriteFile(path, []byte(reloadedCatalog), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	translations := NewTranslations(filepath.Join(t.TempDir(), "missing"), "wsjtx", nil)
	translations.Use("it")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := translations.Watch(ctx); err != nil {
		t.Fatal(err)
	}
}
