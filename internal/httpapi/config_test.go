package httpapi

import "testing"

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	t.Cleanup(func() { SetMaxBodyBytes(0) })
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(1234)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
}

func TestCORSOptions_Defaults(t *testing.T) {
	SetCORSOptions(true, nil, nil, nil)
	t.Cleanup(func() { SetCORSOptions(false, nil, nil, nil) })
	o := corsOptions()
	if len(o.AllowedOrigins) != 1 || o.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", o.AllowedOrigins)
	}
	if len(o.AllowedMethods) != 3 {
		t.Fatalf("unexpected methods: %v", o.AllowedMethods)
	}
}

func TestSetCORSOptions_CopiesSlices(t *testing.T) {
	origins := []string{"http://a"}
	SetCORSOptions(true, origins, nil, nil)
	t.Cleanup(func() { SetCORSOptions(false, nil, nil, nil) })
	origins[0] = "http://b"
	if corsAllowedOrigins[0] != "http://a" {
		t.Fatalf("options alias caller slice: %v", corsAllowedOrigins)
	}
}
