package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, b []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestRunJSON(t *testing.T) {
	path := writeFile(t, "potion.json", []byte(`{"Name":"minecraft:potion","Count":1,"Damage":5}`))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{path}, &stdout, &stderr))
	assert.JSONEq(t, `{"id":"minecraft:potion","Count":1,"tag":{"Potion":"minecraft:night_vision"}}`, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunNBT(t *testing.T) {
	b, err := nbt.MarshalEncoding(map[string]any{
		"Name":   "minecraft:nether_brick",
		"Count":  byte(3),
		"Damage": int16(0),
	}, nbt.LittleEndian)
	require.NoError(t, err)
	path := writeFile(t, "bricks.nbt", b)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-nbt", "-indent", path}, &stdout, &stderr))
	assert.JSONEq(t, `{"id":"minecraft:nether_bricks","Count":3,"tag":{}}`, stdout.String())
	assert.True(t, strings.Contains(stdout.String(), "\n  "))
}

func TestRunFailure(t *testing.T) {
	good := writeFile(t, "good.json", []byte(`{"Name":"minecraft:slime","Count":1}`))
	bad := writeFile(t, "bad.json", []byte(`{"Count":1}`))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{bad, filepath.Join(t.TempDir(), "missing.json"), good}, &stdout, &stderr))
	assert.JSONEq(t, `{"id":"minecraft:slime_block","Count":1,"tag":{}}`, stdout.String())
	assert.Contains(t, stderr.String(), "bad.json")
	assert.Contains(t, stderr.String(), "missing.json")
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-unknown"}, &stdout, &stderr))
}
