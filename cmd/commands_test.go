package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// setupTestEnv: 임시 SQLite 파일을 쓰는 로컬 백엔드 설정
func setupTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RESERVAMESA_BACKEND", "local")
	t.Setenv("RESERVAMESA_DB_PATH", filepath.Join(t.TempDir(), "reservamesa.db"))
	t.Setenv("RESERVAMESA_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--env-file", ""))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

var uidPattern = regexp.MustCompile(`uid: (\S+)`)

func whoami(t *testing.T) string {
	t.Helper()
	m := uidPattern.FindStringSubmatch(mustRun(t, "whoami"))
	if m == nil {
		t.Fatal("whoami printed no uid")
	}
	return m[1]
}

func TestSeedAndListRestaurants(t *testing.T) {
	setupTestEnv(t)

	if out := mustRun(t, "seed"); !strings.Contains(out, "4 restaurantes insertados") {
		t.Fatalf("unexpected seed output %q", out)
	}
	// 두 번째 시드는 아무것도 넣지 않음
	if out := mustRun(t, "seed"); !strings.Contains(out, "0 restaurantes insertados") {
		t.Fatalf("unexpected second seed output %q", out)
	}

	out := mustRun(t, "restaurants", "--cuisine", "Japonesa")
	if !strings.Contains(out, "Sushi Zen") || strings.Contains(out, "El Buen Sabor") {
		t.Errorf("unexpected cuisine listing %q", out)
	}

	out = mustRun(t, "restaurants", "--search", "nada que ver")
	if !strings.Contains(out, "No se encontraron restaurantes") {
		t.Errorf("expected empty listing message, got %q", out)
	}
}

func TestReserveCommand(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, "seed")

	out := mustRun(t, "reserve", "--restaurant", "rest_1", "--name", "Ana", "--date", "2025-12-01", "--time", "20:00")
	if !strings.Contains(out, "¡Reserva exitosa! Te esperamos.") {
		t.Errorf("unexpected reserve output %q", out)
	}

	_, err := run(t, "reserve", "--restaurant", "rest_1", "--name", "Ana")
	if err == nil || !strings.Contains(err.Error(), "Todos los campos son obligatorios.") {
		t.Errorf("expected validation error, got %v", err)
	}

	_, err = run(t, "reserve", "--restaurant", "rest_1", "--name", "Ana", "--date", "2025-12-01", "--time", "20:00", "--people", "0")
	if err == nil || !strings.Contains(err.Error(), "Todos los campos son obligatorios.") {
		t.Errorf("expected validation error for zero people, got %v", err)
	}
}

func TestIdentityPersistsUntilSignOut(t *testing.T) {
	setupTestEnv(t)

	first := whoami(t)
	if again := whoami(t); again != first {
		t.Fatalf("identity changed between runs: %s -> %s", first, again)
	}

	if out := mustRun(t, "signout"); !strings.Contains(out, "cerrada") {
		t.Fatalf("unexpected signout output %q", out)
	}
	if out := mustRun(t, "signout"); !strings.Contains(out, "No hay una sesión activa.") {
		t.Fatalf("unexpected second signout output %q", out)
	}

	if next := whoami(t); next == first {
		t.Error("expected a new identity after sign-out")
	}
}

func TestSeedRequiresLocalBackend(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("RESERVAMESA_BACKEND", "rest")
	t.Setenv("RESERVAMESA_BACKEND_URL", "http://127.0.0.1:1")
	t.Setenv("RESERVAMESA_API_KEY", "anon-key")

	if _, err := run(t, "seed"); err == nil {
		t.Fatal("expected seed to fail on the rest backend")
	}
}
