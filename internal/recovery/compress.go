package recovery

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func compress(text string) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := io.WriteString(w, text); err != nil {
		return nil, fmt.Errorf("compressing content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing content: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) (string, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return "", fmt.Errorf("decompressing content: %w", err)
	}
	return string(out), nil
}
