package png

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/pnglitch/internal/chunk"
)

// maxKeywordLength is the longest tEXt keyword allowed by the PNG
// specification.
const maxKeywordLength = 79

// TextEntry is a keyword/value pair stored in a tEXt chunk.
type TextEntry struct {
	Keyword string
	Text    string
}

// Text returns the tEXt entries of the image in file order. tEXt chunks are
// Latin-1 encoded; the returned strings are UTF-8.
func (img *Image) Text() ([]TextEntry, error) {
	var entries []TextEntry
	for _, list := range [][]chunk.Chunk{img.before, img.after} {
		for _, c := range list {
			if c.Type != chunk.TEXT {
				continue
			}
			entry, err := decodeText(c.Data)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// SetText stores text under keyword, replacing the first tEXt chunk with the
// same keyword or adding a new chunk before the image data.
func (img *Image) SetText(keyword, text string) error {
	data, err := encodeText(keyword, text)
	if err != nil {
		return err
	}

	for _, list := range [][]chunk.Chunk{img.before, img.after} {
		for i, c := range list {
			if c.Type != chunk.TEXT {
				continue
			}
			if existing, err := decodeText(c.Data); err == nil && existing.Keyword == keyword {
				list[i] = chunk.New(chunk.TEXT, data)
				return nil
			}
		}
	}

	img.before = append(img.before, chunk.New(chunk.TEXT, data))
	return nil
}

func decodeText(data []byte) (TextEntry, error) {
	sep := bytes.IndexByte(data, 0)
	if sep < 1 || sep > maxKeywordLength {
		return TextEntry{}, fmt.Errorf("%w: missing or oversized keyword", ErrInvalidText)
	}

	dec := charmap.ISO8859_1.NewDecoder()
	keyword, err := dec.Bytes(data[:sep])
	if err != nil {
		return TextEntry{}, fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	text, err := dec.Bytes(data[sep+1:])
	if err != nil {
		return TextEntry{}, fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	return TextEntry{Keyword: string(keyword), Text: string(text)}, nil
}

func encodeText(keyword, text string) ([]byte, error) {
	enc := charmap.ISO8859_1.NewEncoder()
	k, err := enc.String(keyword)
	if err != nil {
		return nil, fmt.Errorf("%w: keyword %q is not Latin-1: %v", ErrInvalidText, keyword, err)
	}
	if len(k) < 1 || len(k) > maxKeywordLength {
		return nil, fmt.Errorf("%w: keyword must be 1-%d bytes, got %d", ErrInvalidText, maxKeywordLength, len(k))
	}
	if bytes.IndexByte([]byte(k), 0) >= 0 {
		return nil, fmt.Errorf("%w: keyword contains a NUL byte", ErrInvalidText)
	}

	v, err := enc.String(text)
	if err != nil {
		return nil, fmt.Errorf("%w: text is not Latin-1: %v", ErrInvalidText, err)
	}

	data := make([]byte, 0, len(k)+1+len(v))
	data = append(data, k...)
	data = append(data, 0)
	data = append(data, v...)
	return data, nil
}
