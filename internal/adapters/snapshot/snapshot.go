// Package snapshot encodes whole worlds for storage. A snapshot is a
// versioned JSON document, optionally compressed; Decode recognises the
// compression from the frame magic so stored snapshots stay readable after
// the configured compression changes.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

const Version = 1

type Compression string

const (
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
	CompressionNone Compression = "none"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

type Header struct {
	Version int    `json:"version"`
	GameID  string `json:"game_id"`
	Year    int    `json:"year"`
}

// WorldV1 is the stored shape of a world. Design specs and pointer links are
// derived data and are rebuilt on decode.
type WorldV1 struct {
	Header Header        `json:"header"`
	World  *game.World   `json:"world"`
	Techs  []*rules.Tech `json:"techs,omitempty"`
}

// Codec turns worlds into snapshot bytes and back.
type Codec struct {
	compression Compression
	encoder     *zstd.Encoder
	decoder     *zstd.Decoder
}

func NewCodec(compression Compression) (*Codec, error) {
	switch compression {
	case "":
		compression = CompressionZstd
	case CompressionZstd, CompressionLZ4, CompressionNone:
	default:
		return nil, fmt.Errorf("unknown snapshot compression %q", compression)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Codec{compression: compression, encoder: enc, decoder: dec}, nil
}

func (c *Codec) Compression() Compression {
	return c.compression
}

func (c *Codec) Encode(w *game.World) ([]byte, error) {
	doc := WorldV1{
		Header: Header{Version: Version, GameID: w.GameID, Year: w.Year},
		World:  w,
	}
	if w.Techs != nil {
		doc.Techs = w.Techs.All()
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal world: %w", err)
	}

	switch c.compression {
	case CompressionZstd:
		return c.encoder.EncodeAll(raw, make([]byte, 0, len(raw)/4)), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, fmt.Errorf("failed to lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("failed to lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return raw, nil
	}
}

// Decode reads a snapshot in two passes: the entities are materialised with
// their IDs first, then the world is indexed and its references resolved.
func (c *Codec) Decode(data []byte) (*game.World, error) {
	raw, err := c.decompress(data)
	if err != nil {
		return nil, err
	}

	var doc WorldV1
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if doc.Header.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", doc.Header.Version)
	}
	if doc.World == nil {
		return nil, fmt.Errorf("snapshot has no world")
	}
	w := doc.World

	w.Techs = rules.DefaultTechCatalog()
	if len(doc.Techs) > 0 {
		techs, err := rules.NewTechCatalog(doc.Techs)
		if err != nil {
			return nil, fmt.Errorf("snapshot tech catalog: %w", err)
		}
		w.Techs = techs
	}
	if w.Rules == nil {
		w.Rules = rules.Default()
	}

	if errs := w.Link(); len(errs) > 0 {
		return nil, fmt.Errorf("snapshot references do not resolve: %w", errs[0])
	}
	// Designs that no longer compute keep a zero spec; the next turn reports them.
	for _, p := range w.Players {
		_ = p.ComputeDesignSpecs(w.Rules, w.Techs)
	}
	return w, nil
}

func (c *Codec) decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		out, err := c.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to zstd decompress: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, lz4Magic):
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to lz4 decompress: %w", err)
		}
		return out, nil
	default:
		return data, nil
	}
}
