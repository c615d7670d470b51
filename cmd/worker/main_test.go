package main

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/fitplan/fitplan/internal/config"
)

func TestRun_RequiresPubSubAndPostgres(t *testing.T) {
	log := zerolog.New(io.Discard)

	cfg := config.Default()
	cfg.PubSub.ProjectID = ""
	assert.ErrorContains(t, run(cfg, log), "pubsub.project_id is required")

	cfg.PubSub.ProjectID = "fitplan-test"
	cfg.Storage = config.StorageMemory
	assert.ErrorContains(t, run(cfg, log), `worker requires "postgres" storage`)
}
