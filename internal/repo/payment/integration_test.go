//go:build integration
// +build integration

package payment_repo_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"molliepay/internal/testinfra"
)

var container *testinfra.PostgresContainer

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := testinfra.NewPostgres(ctx)
	if err != nil {
		panic(fmt.Sprintf("Failed to start postgres container: %v", err))
	}

	container = pgContainer

	code := m.Run()

	pgContainer.Cleanup(ctx)
	os.Exit(code)
}
