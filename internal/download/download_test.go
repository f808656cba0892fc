package download

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchDecodesImage(t *testing.T) {
	data := pngBytes(t, 30, 20)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	img, err := New(srv.URL, time.Second, 0).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("expected 30x20 image, got %v", b)
	}
	if gotUA != defaultUserAgent {
		t.Errorf("expected user agent %q, got %q", defaultUserAgent, gotUA)
	}
}

func TestFetchFollowsRedirect(t *testing.T) {
	data := pngBytes(t, 8, 8)
	mux := http.NewServeMux()
	mux.HandleFunc("/300", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/id/1/300", http.StatusFound)
	})
	mux.HandleFunc("/id/1/300", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	if _, err := New(srv.URL+"/300", time.Second, 0).Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, 0).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "HTTP 503") {
		t.Errorf("expected HTTP 503 error, got %v", err)
	}
}

func TestFetchUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, 0).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestFetchCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(srv.URL, 5*time.Second, 0).Fetch(ctx); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{300, 300, 0, 300, 300},
		{300, 200, 600, 300, 200},
		{1200, 600, 600, 600, 300},
		{400, 1000, 500, 200, 500},
		{5000, 1, 100, 100, 1},
	}
	for _, tt := range tests {
		got := Fit(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.max).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("Fit(%dx%d, %d): expected %dx%d, got %dx%d", tt.w, tt.h, tt.max, tt.wantW, tt.wantH, got.Dx(), got.Dy())
		}
	}
}
