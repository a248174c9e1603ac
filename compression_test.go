package spellcsv

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCompressionType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected CompressionType
	}{
		{"Gzip file", "mon_ew_xt_uni_bus_00.csv.gz", CompressionGZ},
		{"Uppercase extension", "DATA.CSV.GZ", CompressionGZ},
		{"Bzip2 file", "data.csv.bz2", CompressionBZ2},
		{"Xz file", "data.csv.xz", CompressionXZ},
		{"Zstd file", "data.csv.zst", CompressionZSTD},
		{"Plain file", "data.csv", CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, DetectCompressionType(tt.path))
		})
	}
}

func TestCompressionType_Extension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".gz", CompressionGZ.Extension())
	assert.Equal(t, ".zst", CompressionZSTD.Extension())
	assert.Empty(t, CompressionNone.Extension())
}

func TestDataFileRoundTrip(t *testing.T) {
	t.Parallel()

	payload := "9997;19800101;19900101;0;0;CC;BB;\n1212;19850101;19950101;0;0;CC;DD;\n"

	tests := []struct {
		name     string
		filename string
	}{
		{"No compression", "data.csv"},
		{"Gzip", "data.csv.gz"},
		{"Xz", "data.csv.xz"},
		{"Zstd", "data.csv.zst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.filename)

			writer, cleanup, err := CreateDataFile(path)
			require.NoError(t, err)
			_, err = io.WriteString(writer, payload)
			require.NoError(t, err)
			require.NoError(t, cleanup())

			reader, rcleanup, err := OpenDataFile(path)
			require.NoError(t, err)
			got, err := io.ReadAll(reader)
			require.NoError(t, err)
			require.NoError(t, rcleanup())

			assert.Equal(t, payload, string(got))
		})
	}
}

func TestCreateDataFile_BZ2Unsupported(t *testing.T) {
	t.Parallel()

	_, _, err := CreateDataFile(filepath.Join(t.TempDir(), "data.csv.bz2"))
	assert.Error(t, err, "bzip2 has no writer in the standard library")
}

func TestOpenDataFile_Missing(t *testing.T) {
	t.Parallel()

	_, _, err := OpenDataFile(filepath.Join(t.TempDir(), "nope.csv.gz"))
	assert.Error(t, err)
}
