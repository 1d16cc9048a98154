/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer_test.go
Description: Tests for the evaluation report writer.
*/

package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEvaluationReport(t *testing.T) {
	dir := t.TempDir()
	report := map[string]interface{}{"system": "tip", "output": 11.21}

	path, err := WriteEvaluationReport(dir, "eval", "1.0.0", report)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "eval"), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_eval_v1.0.0.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "tip", got["system"])
	assert.Equal(t, 11.21, got["output"])
}

func TestWriteEvaluationReportErrors(t *testing.T) {
	_, err := WriteEvaluationReport(t.TempDir(), "", "1.0.0", nil)
	assert.Error(t, err)

	_, err = WriteEvaluationReport(t.TempDir(), "eval", "1.0.0", map[string]interface{}{"bad": make(chan int)})
	assert.ErrorContains(t, err, "marshal")
}
