package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCmd_RequiresFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"classify"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestClassifyCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"classify",
		"--query", "rep-seqs.fasta",
		"--reference-reads", "extended.fasta",
		"--reference-taxonomy", "extended_taxonomy_silva.tsv",
		"--output", "classification.tsv",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Classification: classification.tsv")
}

func TestFilterCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"filter",
		"--table", "table.biom",
		"--taxonomy", "classification.tsv",
		"--output", "filtered.biom",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Filtered table: filtered.biom")
}

func TestRarefyCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"rarefy",
		"--table", "filtered.biom",
		"--depth", "10000",
		"--output", "rarefied.biom",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Rarefied table: rarefied.biom")
}

func TestRarefyCmd_ServiceNotConfigured(t *testing.T) {
	oldService := pipelineService
	pipelineService = nil
	defer func() {
		pipelineService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{
		"rarefy",
		"--table", "filtered.biom",
		"--depth", "10000",
		"--output", "rarefied.biom",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline service not configured")
}
