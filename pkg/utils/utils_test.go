package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpatrade/alpatrade/internal/types"
)

func TestGetSchemaFromStrategyConfig(t *testing.T) {
	schema, err := GetSchemaFromConfig(types.StrategyConfig{})
	require.NoError(t, err)
	require.NotEmpty(t, schema)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(schema), &decoded))

	assert.Contains(t, schema, "stoch_k_period")
	assert.Contains(t, schema, "default_automation_mode")
}
