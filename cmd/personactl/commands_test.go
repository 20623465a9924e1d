package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded), out.String())
	return decoded, nil
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score", "-i", "socializing, Networking,innovation,volunteering,adventure")
	require.NoError(t, err)
	require.Equal(t, "ENFP", out["type"])

	out, err = run(t, "score")
	require.NoError(t, err)
	require.Equal(t, "ISTJ", out["type"])
	pct := out["percentages"].(map[string]any)
	require.InDelta(t, 50.0, pct["I"], 1e-9)

	_, err = run(t, "score", "--normalizer", "bogus")
	require.Error(t, err)
}

func TestQuizCommand(t *testing.T) {
	out, err := run(t, "quiz", "i", "n", "t", "j")
	require.NoError(t, err)
	require.Equal(t, "INTJ", out["type"])

	_, err = run(t, "quiz", "i", "n", "t", "x")
	require.Error(t, err)

	_, err = run(t, "quiz", "i")
	require.Error(t, err)
}

func TestCompatCommandIsDirectional(t *testing.T) {
	fwd, err := run(t, "compat", "--from", "infj", "--to", "ISTJ")
	require.NoError(t, err)
	back, err := run(t, "compat", "--from", "ISTJ", "--to", "INFJ")
	require.NoError(t, err)

	require.InDelta(t, 0.3, fwd["affinity"], 1e-9)
	require.InDelta(t, 0.7, back["affinity"], 1e-9)
	require.Equal(t, true, fwd["affinity_known"])
	require.InDelta(t, 15.0, fwd["blended_score"], 1e-9)

	_, err = run(t, "compat", "--from", "XXXX", "--to", "ISTJ")
	require.Error(t, err)
}

func TestTableCommand(t *testing.T) {
	out, err := run(t, "table")
	require.NoError(t, err)
	require.InDelta(t, 0.0, out["missing"], 1e-9)
	require.Greater(t, out["asymmetric"].(float64), 0.0)

	_, err = run(t, "table", "--table", "/nonexistent/affinity.yaml")
	require.Error(t, err)
}
