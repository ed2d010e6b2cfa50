package httpout

import (
	"context"
	"sync"
	"testing"
	"time"
)

type capturedPost struct {
	body       string
	compressed bool
	multipart  bool
	field      string
}

type mockPoster struct {
	mu     sync.Mutex
	posts  []capturedPost
	status int
	err    error
}

func (poster *mockPoster) Post(ctx context.Context, body []byte, compressed bool, multipart bool, fieldName string) (status int, response string, err error) {
	poster.mu.Lock()
	defer poster.mu.Unlock()
	poster.posts = append(poster.posts, capturedPost{
		body:       string(body),
		compressed: compressed,
		multipart:  multipart,
		field:      fieldName,
	})
	status = poster.status
	if status == 0 {
		status = 200
	}
	err = poster.err
	return
}

func (poster *mockPoster) snapshot() (posts []capturedPost) {
	poster.mu.Lock()
	defer poster.mu.Unlock()
	posts = append(posts, poster.posts...)
	return
}

var fixedNow = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

// Output with a mock transport and a fixed clock
func newTestModule(t *testing.T, options map[string]string) (mod *OutModule, poster *mockPoster) {
	t.Helper()

	mod = New()
	poster = &mockPoster{}
	mod.SetPoster(poster)
	mod.now = func() time.Time { return fixedNow }

	for option, arg := range options {
		if _, err := mod.Set(option, arg); err != nil {
			t.Fatalf("set %s=%s: %v", option, arg, err)
		}
	}
	return
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}
