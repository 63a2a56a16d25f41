package checker

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"proxycheck/internal/domain"
)

func TestCheckAllPreservesInputOrder(t *testing.T) {
	slow := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		fmt.Fprint(w, `{"query":"198.51.100.7","country":"United States","city":"Ashburn"}`)
	})
	fast := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	specs := []string{proxyAddr(slow), proxyAddr(fast)}

	engine := New(testProbeURL, nil)
	results := engine.CheckAll(context.Background(), specs, 5*time.Second, 2)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Proxy != "http://"+proxyAddr(slow) {
		t.Fatalf("results[0] belongs to %s, want the slow proxy", results[0].Proxy)
	}
	if results[0].Status != domain.StatusWorking {
		t.Fatalf("slow proxy status was %s (error %q), want working", results[0].Status, results[0].Error)
	}
	if results[1].Status != domain.StatusFailed {
		t.Fatalf("fast proxy status was %s, want failed", results[1].Status)
	}
}

func TestCheckAllHonorsConcurrencyLimit(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0

	proxySrv := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		time.Sleep(50 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()

		fmt.Fprint(w, `{"query":"198.51.100.7"}`)
	})

	specs := make([]string, 8)
	for i := range specs {
		specs[i] = proxyAddr(proxySrv)
	}

	engine := New(testProbeURL, nil)
	results := engine.CheckAll(context.Background(), specs, 5*time.Second, 2)

	for i, result := range results {
		if result.Status != domain.StatusWorking {
			t.Fatalf("results[%d] status was %s (error %q), want working", i, result.Status, result.Error)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if peak > 2 {
		t.Fatalf("%d checks ran at once, want at most 2", peak)
	}
}

func TestCheckAllEmptyInput(t *testing.T) {
	engine := New(testProbeURL, nil)
	results := engine.CheckAll(context.Background(), nil, time.Second, 4)

	if results == nil {
		t.Fatal("expected a non-nil empty slice")
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}

func TestCheckAllMixedOutcomes(t *testing.T) {
	working := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":"198.51.100.7","country":"United States"}`)
	})

	specs := []string{proxyAddr(working), closedPort(t), proxyAddr(working)}

	engine := New(testProbeURL, nil)
	results := engine.CheckAll(context.Background(), specs, 5*time.Second, 3)

	summary := domain.Summarize(results)
	if summary.Total != 3 || summary.Working != 2 || summary.Failed != 1 {
		t.Fatalf("summary was %+v, want 3 total, 2 working, 1 failed", summary)
	}
	if results[1].Status == domain.StatusWorking {
		t.Fatal("closed port cannot yield a working result")
	}
}
