package photo

import "testing"

func TestResolve_Website(t *testing.T) {
	got := Resolve("Jane Cooper", "example.com", "")
	if got != "https://logo.clearbit.com/example.com" {
		t.Errorf("unexpected photo URL: %s", got)
	}
}

func TestResolve_WebsiteWithScheme(t *testing.T) {
	got := Resolve("Jane Cooper", "https://www.initech.com/about", "")
	if got != "https://logo.clearbit.com/initech.com" {
		t.Errorf("expected www stripped and path dropped, got %s", got)
	}
}

func TestResolve_EmailFallback(t *testing.T) {
	got := Resolve("Jane Cooper", "", "a@b.com")
	if got != "https://logo.clearbit.com/b.com" {
		t.Errorf("unexpected photo URL: %s", got)
	}
}

func TestResolve_WebsiteWinsOverEmail(t *testing.T) {
	got := Resolve("Jane Cooper", "initech.com", "jane@gmail.com")
	if got != "https://logo.clearbit.com/initech.com" {
		t.Errorf("website should take precedence, got %s", got)
	}
}

func TestResolve_PlaceholderWhenNoDomain(t *testing.T) {
	got := Resolve("Jane Cooper", "", "")
	if got != "https://picsum.photos/seed/Jane%20Cooper/200" {
		t.Errorf("unexpected placeholder URL: %s", got)
	}
}

func TestResolve_MalformedWebsiteYieldsPlaceholder(t *testing.T) {
	// A website that is set but cannot be parsed into a hostname resolves
	// to the placeholder directly; the email is not consulted.
	got := Resolve("Broken Site", "http://%zz", "broken@fallback.io")
	if got != "https://picsum.photos/seed/Broken%20Site/200" {
		t.Errorf("expected placeholder for malformed website, got %s", got)
	}
}

func TestResolve_EmptyHostnameWebsiteYieldsPlaceholder(t *testing.T) {
	got := Resolve("Broken Site", "https:///just-a-path", "broken@fallback.io")
	if got != "https://picsum.photos/seed/Broken%20Site/200" {
		t.Errorf("expected placeholder for hostless website, got %s", got)
	}
}

func TestResolve_EmailWithoutDomain(t *testing.T) {
	got := Resolve("No Domain", "", "not-an-email")
	if got != "https://picsum.photos/seed/No%20Domain/200" {
		t.Errorf("unexpected URL: %s", got)
	}
}

func TestIsEmbedded(t *testing.T) {
	if !IsEmbedded("data:image/png;base64,AAAA") {
		t.Error("expected data URL to be recognised as embedded")
	}
	if IsEmbedded("https://logo.clearbit.com/example.com") {
		t.Error("remote URL must not be treated as embedded")
	}
	if IsEmbedded("") {
		t.Error("empty photo URL must not be treated as embedded")
	}
}
