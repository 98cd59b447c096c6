package compress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandialabs/elucidator-go/format"
)

func roundTrip(t *testing.T, codec Codec, data []byte) {
	t.Helper()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i * 7 % 251)
	}

	codecs := map[string]Codec{
		"noop": NewNoOpCompressor(),
		"s2":   NewS2Compressor(),
		"lz4":  NewLZ4Compressor(),
		"zstd": NewZstdCompressor(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, codec, payload)
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	codecs := []Codec{NewS2Compressor(), NewLZ4Compressor(), NewZstdCompressor(), NewNoOpCompressor()}
	for _, codec := range codecs {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "blob")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0xFF), "blob")
	require.Error(t, err)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionLZ4)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}
