package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValidEmail(t *testing.T) {
	tests := map[string]bool{
		"a@b.c":                true,
		"sara@ejemplo.es":      true,
		"x.y+z@sub.dominio.eu": true,
		"abc":                  false,
		"":                     false,
		"a@b":                  false,
		"a b@c.d":              false,
		"a@@b.c":               false,
	}
	for in, want := range tests {
		if got := ValidEmail(in); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	errs := Form{Name: "  ", Email: "", Message: "\n"}.Validate()
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}
	for _, f := range []string{FieldName, FieldEmail, FieldMessage} {
		if errs[f] == "" {
			t.Errorf("missing error for %s", f)
		}
	}

	errs = Form{Name: "Ana", Email: "ana@", Message: "Hola"}.Validate()
	if diff := cmp.Diff(FieldErrors{FieldEmail: "Por favor, introduce un correo electrónico válido."}, errs); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	if errs := (Form{Name: "Ana", Email: "ana@ejemplo.es", Message: "Hola"}).Validate(); errs != nil {
		t.Errorf("valid form returned %v", errs)
	}
}

func TestSubmitEmptyFormMakesNoCall(t *testing.T) {
	called := false
	sub := SubmitterFunc(func(ctx context.Context, f Form) error {
		called = true
		return nil
	})
	var st State
	err := st.Submit(context.Background(), sub, time.Now())

	var fe FieldErrors
	if !errors.As(err, &fe) || len(fe) != 3 {
		t.Fatalf("error = %v, want three field errors", err)
	}
	if called {
		t.Error("submitter called for an invalid form")
	}
	if st.Status != StatusIdle {
		t.Errorf("status = %v, want idle", st.Status)
	}
}

func TestSubmitInvalidKeepsValues(t *testing.T) {
	st := State{Form: Form{Name: "Ana", Email: "abc", Message: "Hola"}}
	st.Submit(context.Background(), Chain{}, time.Now())
	if st.Form.Name != "Ana" || st.Form.Email != "abc" || st.Form.Message != "Hola" {
		t.Errorf("values not preserved: %+v", st.Form)
	}
}

func TestSubmitValidLifecycle(t *testing.T) {
	var seen []Status
	st := State{Form: Form{Name: " Ana ", Email: "ana@ejemplo.es", Message: "Hola"}}
	seen = append(seen, st.Status)
	var got Form
	sub := SubmitterFunc(func(ctx context.Context, f Form) error {
		seen = append(seen, st.Status)
		got = f
		return nil
	})
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	if err := st.Submit(context.Background(), sub, now); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	seen = append(seen, st.Status)

	if diff := cmp.Diff([]Status{StatusIdle, StatusSending, StatusSuccess}, seen); diff != "" {
		t.Errorf("status sequence mismatch (-want +got):\n%s", diff)
	}
	if got.Name != "Ana" {
		t.Errorf("submitted name %q, want trimmed", got.Name)
	}
	if st.Form != (Form{}) {
		t.Errorf("fields not cleared: %+v", st.Form)
	}

	if s := st.StatusAt(now.Add(4*time.Second), ResetAfter); s != StatusSuccess {
		t.Errorf("status after 4s = %v", s)
	}
	if d := st.ResetIn(now.Add(4*time.Second), ResetAfter); d != time.Second {
		t.Errorf("ResetIn = %v, want 1s", d)
	}
	if s := st.StatusAt(now.Add(ResetAfter), ResetAfter); s != StatusIdle {
		t.Errorf("status after reset = %v, want idle", s)
	}
}

func TestSubmitFailureKeepsValues(t *testing.T) {
	form := Form{Name: "Ana", Email: "ana@ejemplo.es", Message: "Hola"}
	st := State{Form: form}
	boom := errors.New("boom")
	err := st.Submit(context.Background(), SubmitterFunc(func(context.Context, Form) error { return boom }), time.Now())
	if !errors.Is(err, ErrSubmit) || !errors.Is(err, boom) {
		t.Fatalf("error = %v", err)
	}
	if st.Status != StatusError {
		t.Errorf("status = %v", st.Status)
	}
	if st.Form != form {
		t.Errorf("values changed: %+v", st.Form)
	}
}

func TestHoneypot(t *testing.T) {
	st := State{Form: Form{Honeypot: "spam"}}
	called := false
	err := st.Submit(context.Background(), SubmitterFunc(func(context.Context, Form) error {
		called = true
		return nil
	}), time.Now())
	if err != nil || called || st.Status != StatusSuccess {
		t.Errorf("err=%v called=%v status=%v", err, called, st.Status)
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	var order []string
	step := func(name string, err error) Submitter {
		return SubmitterFunc(func(context.Context, Form) error {
			order = append(order, name)
			return err
		})
	}
	boom := errors.New("boom")
	err := Chain{step("inbox", nil), nil, step("forward", boom), step("never", nil)}.Submit(context.Background(), Form{})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v", err)
	}
	if diff := cmp.Diff([]string{"inbox", "forward"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestForwarder(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		r.ParseForm()
		got = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fw := &Forwarder{URL: srv.URL, Client: srv.Client()}
	if err := fw.Submit(context.Background(), Form{Name: "Ana", Email: "ana@ejemplo.es", Message: "Hola"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	want := url.Values{
		"form-name": {"contact"},
		"name":      {"Ana"},
		"email":     {"ana@ejemplo.es"},
		"message":   {"Hola"},
		"bot-field": {""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("posted values mismatch (-want +got):\n%s", diff)
	}
}

func TestForwarderNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	fw := &Forwarder{URL: srv.URL, Client: srv.Client()}
	if err := fw.Submit(context.Background(), Form{}); err == nil {
		t.Fatal("expected error for 502")
	}
}
