package generator

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripTest exercises a generated server through a generated client.
const roundTripTest = `package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
)

type petService struct{}

func (petService) GetAllPets(ctx context.Context, limit *int64) (Pets, error) {
	if limit != nil && *limit == 0 {
		return nil, errors.New("boom")
	}
	return Pets{{ID: 1, Name: "rex"}}, nil
}

func (petService) CreatePet(ctx context.Context, newPet NewPet) error {
	switch newPet.Name {
	case "forbidden":
		return CreatePetE403{}
	case "dup":
		return CreatePetE409{Body: SomeConflict{Message: "exists"}}
	case "teapot":
		return CreatePetDefault{Status: 418, Body: Error{Code: 7, Message: "short"}}
	}
	return nil
}

func (petService) GetPet(ctx context.Context, petID int64) (Pet, error) {
	if petID == 404 {
		return Pet{}, GetPetDefault{Status: 404, Body: Error{Code: 404, Message: "missing"}}
	}
	return Pet{ID: petID, Name: "rex"}, nil
}

func TestRoundTrip(t *testing.T) {
	srv := httptest.NewServer(NewHandler(petService{}))
	defer srv.Close()

	c, err := NewClient(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	pets, err := c.GetAllPets(ctx, nil)
	if err != nil || len(pets) != 1 || pets[0].Name != "rex" {
		t.Fatalf("GetAllPets = %v, %v", pets, err)
	}

	zero := int64(0)
	_, err = c.GetAllPets(ctx, &zero)
	var unexpected GetAllPetsUnexpected
	if !errors.As(err, &unexpected) {
		t.Fatalf("GetAllPets error = %T", err)
	}
	if got := AsGetAllPetsError(err).StatusCode(); got != 500 {
		t.Fatalf("status = %d", got)
	}

	if err := c.CreatePet(ctx, NewPet{Name: "ok"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.CreatePet(ctx, NewPet{Name: "forbidden"}).(CreatePetE403); !ok {
		t.Fatal("want CreatePetE403")
	}
	if e, ok := c.CreatePet(ctx, NewPet{Name: "dup"}).(CreatePetE409); !ok || e.Body.Message != "exists" {
		t.Fatalf("want CreatePetE409, got %#v", e)
	}
	if e, ok := c.CreatePet(ctx, NewPet{Name: "teapot"}).(CreatePetDefault); !ok || e.Status != 418 || e.Body.Code != 7 {
		t.Fatalf("want CreatePetDefault, got %#v", e)
	}

	pet, err := c.GetPet(ctx, 7)
	if err != nil || pet.ID != 7 {
		t.Fatalf("GetPet = %v, %v", pet, err)
	}
	_, err = c.GetPet(ctx, 404)
	var def GetPetDefault
	if !errors.As(err, &def) || def.StatusCode() != 404 || def.Body.Message != "missing" {
		t.Fatalf("GetPet error = %#v", err)
	}
}
`

// TestGeneratedCodeRoundTrip builds the generated petstore package against a
// copy of the hsr runtime and runs a server/client round trip through it.
func TestGeneratedCodeRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping go toolchain test in short mode")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available")
	}

	moduleDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(moduleDir, "go.mod"), []byte("module petstore\n\ngo 1.22\n"), 0o644))

	runtimeDir := filepath.Join(moduleDir, "hsr")
	require.NoError(t, os.MkdirAll(runtimeDir, 0o755))
	sources, err := filepath.Glob("../hsr/*.go")
	require.NoError(t, err)
	for _, src := range sources {
		if strings.HasSuffix(src, "_test.go") {
			continue
		}
		data, err := os.ReadFile(src)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(runtimeDir, filepath.Base(src)), data, 0o644))
	}

	result, err := Generate(petstorePath, WithRuntimeImport("petstore/hsr"))
	require.NoError(t, err)
	apiDir := filepath.Join(moduleDir, "api")
	_, err = result.WriteFiles(apiDir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(apiDir, "roundtrip_test.go"), []byte(roundTripTest), 0o644))

	cmd := exec.Command(goBin, "test", "./...")
	cmd.Dir = moduleDir
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod")
	output, err := cmd.CombinedOutput()
	assert.NoError(t, err, "generated code should build and pass the round trip.\nOutput:\n%s", string(output))
}
