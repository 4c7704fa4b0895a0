package results

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPrintRuns(t *testing.T) {
	runs := []Run{
		{
			ID:           2,
			Command:      "includesTest",
			Corpus:       "hundredThousandHashes.json",
			Format:       "json",
			Size:         100000,
			Rounds:       1,
			Measurements: datatypes.JSON(`{"Time to parse JSON": 80.5, "Time to load JSON": 12}`),
			CreatedAt:    time.Now(),
		},
		{
			ID:        1,
			Command:   "genHashes",
			Algorithm: "sha512",
			Size:      100000,
			CreatedAt: time.Now(),
		},
	}

	var out bytes.Buffer
	require.NoError(t, PrintRuns(&out, runs))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "includesTest")
	// 按标签排序
	assert.Contains(t, lines[1], "Time to load JSON=12.000; Time to parse JSON=80.500")
	assert.Contains(t, lines[2], "sha512")
}

func TestPrintRuns_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintRuns(&out, nil))
	assert.Equal(t, "No runs recorded yet.\n", out.String())
}
