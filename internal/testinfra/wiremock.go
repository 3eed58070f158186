//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const wiremockPort = "8080/tcp"

// WiremockContainer stands in for the Mollie Orders API in integration
// tests. The JSON stub mappings under mappingsPath describe the canned
// order and refund responses.
type WiremockContainer struct {
	Container testcontainers.Container
	BaseURL   string
}

// NewWiremock starts a Wiremock container serving the given mappings
// directory. BaseURL has no path prefix; callers append /v2 themselves.
func NewWiremock(ctx context.Context, mappingsPath string) (*WiremockContainer, error) {
	mappings, err := filepath.Abs(mappingsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve mappings path: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "wiremock/wiremock:latest",
			ExposedPorts: []string{wiremockPort},
			WaitingFor:   wait.ForHTTP("/__admin/mappings").WithPort(wiremockPort),
			Cmd:          []string{"--global-response-templating", "--disable-gzip"},
			Mounts: testcontainers.Mounts(
				testcontainers.BindMount(mappings, "/home/wiremock/mappings"),
			),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start wiremock: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("wiremock host: %w", err)
	}
	port, err := container.MappedPort(ctx, wiremockPort)
	if err != nil {
		return nil, fmt.Errorf("wiremock port: %w", err)
	}

	return &WiremockContainer{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}

func (c *WiremockContainer) Cleanup(ctx context.Context) {
	if c.Container != nil {
		c.Container.Terminate(ctx)
	}
}
