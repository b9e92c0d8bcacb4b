package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("request = %s %s; want POST /api/auth/login", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q; want empty on login", got)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["username"] != "lander" || req["password"] != "hunter2" {
			t.Errorf("credentials = %v", req)
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{
			Account: AccountData{
				ID:       "u1",
				Username: "lander",
				Roles:    []string{"admin", "beta"},
				Enabled:  1,
			},
			Token: "t1",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	acct, err := c.Login(context.Background(), "lander", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if acct.ID != "u1" || acct.Token != "t1" {
		t.Errorf("account = %+v; want id u1 token t1", acct)
	}
	if !acct.Enabled {
		t.Error("Enabled flag not converted from wire 1")
	}
	if len(acct.Roles) != 2 {
		t.Errorf("roles = %v; want both roles on the wire copy", acct.Roles)
	}
}

func TestAccountByID_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t1" {
			t.Errorf("Authorization = %q; want Bearer t1", got)
		}
		_ = json.NewEncoder(w).Encode(AccountData{ID: "u1", Username: "lander"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	acct, err := c.AccountByID(context.Background(), "t1", "u1")
	if err != nil {
		t.Fatalf("AccountByID: %v", err)
	}
	if acct.Token != "t1" {
		t.Errorf("token = %q; want the caller's token attached", acct.Token)
	}
}

func TestDo_RemoteErrorParsesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "invalid_credentials",
			"message": "username or password incorrect",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "lander", "wrong")

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v; want *RemoteError", err)
	}
	if re.Status != http.StatusUnauthorized || re.Code != "invalid_credentials" {
		t.Errorf("RemoteError = %+v", re)
	}
}

func TestDo_RemoteErrorUnparseableBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream dead</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.AccountByID(context.Background(), "t1", "u1")

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v; want *RemoteError", err)
	}
	if re.Status != http.StatusBadGateway || re.Code != "" || re.Message != "" {
		t.Errorf("RemoteError = %+v; want bare status", re)
	}
}

func TestDo_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse further connections

	c := New(srv.URL, nil)
	_, err := c.AccountByID(context.Background(), "t1", "u1")

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v; want *NetworkError", err)
	}
	if ne.Op == "" || ne.Unwrap() == nil {
		t.Errorf("NetworkError = %+v; want op and cause", ne)
	}
}

func TestUpdateApplication_RoundTripsFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var d ApplicationData
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if d.Status != 1 || d.HwidCheck != 1 || d.FreeMode != 0 {
			t.Errorf("wire flags = status %d hwid %d free %d", d.Status, d.HwidCheck, d.FreeMode)
		}
		_ = json.NewEncoder(w).Encode(d)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	in := ApplicationData{ID: "app1", Name: "Loader", Status: 1, HwidCheck: 1}.Model()
	got, err := c.UpdateApplication(context.Background(), "t1", in)
	if err != nil {
		t.Fatalf("UpdateApplication: %v", err)
	}
	if !got.Status || !got.HwidCheck || got.FreeMode {
		t.Errorf("flags = %+v; want status and hwid set", got)
	}
}
